// Package testlog sends log/slog output to a test's log, so records only
// show up for failing tests or under go test -v.
package testlog
