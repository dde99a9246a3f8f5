// Package webtest has helpers for driving express.Handler functions in tests.
package webtest
