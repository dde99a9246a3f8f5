package mockfn

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertCalled fails the test if f was never invoked.
func AssertCalled(t testing.TB, f *Fn) {
	t.Helper()
	if !f.Called() {
		t.Errorf("%s: want at least one call, got none", f.Name())
	}
}

// AssertNotCalled fails the test if f was invoked.
func AssertNotCalled(t testing.TB, f *Fn) {
	t.Helper()
	if n := f.CallCount(); n != 0 {
		t.Errorf("%s: want no calls, got %d", f.Name(), n)
	}
}

// AssertCalledTimes fails the test unless f was invoked exactly n times.
func AssertCalledTimes(t testing.TB, f *Fn, n int) {
	t.Helper()
	if got := f.CallCount(); got != n {
		t.Errorf("%s: want %d calls, got %d", f.Name(), n, got)
	}
}

// AssertCalledWith fails the test unless the most recent call to f had
// arguments equal to want, using the same rules as CalledWith. Extra cmp
// options are added to the comparison.
func AssertCalledWith(t testing.TB, f *Fn, want []any, opts ...cmp.Option) {
	t.Helper()
	c, ok := f.LastCall()
	if !ok {
		t.Errorf("%s: want call with %v, got no calls", f.Name(), want)
		return
	}
	opts = append(slices.Clone(argOpts), opts...)
	if diff := cmp.Diff(normArgs(want), normArgs(c.Args), opts...); diff != "" {
		t.Errorf("%s: call args mismatch (-want +got):\n%s", f.Name(), diff)
	}
}
