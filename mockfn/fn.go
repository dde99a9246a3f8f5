package mockfn

import (
	"log/slog"
	"reflect"
	"slices"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Call captures a single invocation of a Fn.
type Call struct {
	// Args are the arguments the Fn was invoked with.
	Args []any
	// Result is the value the invocation returned.
	Result any
}

// Fn is a call-recording stand-in for a function. The zero value is not
// usable, create one with New.
type Fn struct {
	name   string
	logger *slog.Logger
	attrs  []any

	mu       sync.Mutex
	calls    []Call
	impl     func(args ...any) any
	ret      any
	hasRet   bool
	onceRets []any
	// gen counts resets, so an implementation that outlives one does not
	// write its result into a later call.
	gen int
}

// Option configures a Fn at construction time.
type Option func(f *Fn)

// WithLogger logs every invocation of the Fn at debug level.
func WithLogger(l *slog.Logger, attrs ...any) Option {
	return func(f *Fn) {
		f.logger = l
		f.attrs = attrs
	}
}

// New creates a Fn with the given human readable name.
func New(name string, opts ...Option) *Fn {
	f := &Fn{name: name}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Name returns the name the Fn was created with.
func (f *Fn) Name() string {
	return f.name
}

// Invoke records a copy of args and returns the configured result. The call
// is recorded before an implementation runs. Results are
// taken from, in order: values queued with ReturnOnce, the implementation set
// with Impl, the value set with Return. If none are configured it returns
// nil.
func (f *Fn) Invoke(args ...any) any {
	args = slices.Clone(args)

	f.mu.Lock()
	var (
		result  any
		resolve func(args ...any) any
	)
	switch {
	case len(f.onceRets) > 0:
		result = f.onceRets[0]
		f.onceRets = f.onceRets[1:]
	case f.impl != nil:
		resolve = f.impl
	case f.hasRet:
		result = f.ret
	}
	idx, gen := len(f.calls), f.gen
	f.calls = append(f.calls, Call{Args: args, Result: result})
	f.mu.Unlock()

	// the implementation runs unlocked so it can call back into the Fn.
	if resolve != nil {
		result = resolve(args...)
		f.mu.Lock()
		if f.gen == gen {
			f.calls[idx].Result = result
		}
		f.mu.Unlock()
	}

	if f.logger != nil {
		f.logger.Debug("mock invoked", append([]any{"mock", f.name, "args", args}, f.attrs...)...)
	}
	return result
}

// Return sets a fixed result for every subsequent call. It replaces any
// implementation set with Impl.
func (f *Fn) Return(v any) *Fn {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.impl = nil
	f.ret = v
	f.hasRet = true
	return f
}

// ReturnOnce queues a result for the next call only. Queued results are
// consumed before Return and Impl are consulted.
func (f *Fn) ReturnOnce(v any) *Fn {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onceRets = append(f.onceRets, v)
	return f
}

// Impl sets a function that computes the result of every subsequent call. It
// replaces any value set with Return.
func (f *Fn) Impl(impl func(args ...any) any) *Fn {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.impl = impl
	f.ret = nil
	f.hasRet = false
	return f
}

// Reset clears the recorded call history. Configured results are kept.
func (f *Fn) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
	f.gen++
}

// Calls returns a copy of the recorded calls, oldest first.
func (f *Fn) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallCount returns the number of recorded calls.
func (f *Fn) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Called reports whether the Fn has been invoked since it was created or
// last reset.
func (f *Fn) Called() bool {
	return f.CallCount() > 0
}

// LastCall returns the most recent call.
func (f *Fn) LastCall() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Call{}, false
	}
	return f.calls[len(f.calls)-1], true
}

// CalledWith reports whether any recorded call had arguments equal to args.
// Nil and empty slices or maps are treated as equal, unexported struct fields
// are compared and functions are equal when they share the same code.
func (f *Fn) CalledWith(args ...any) bool {
	for _, c := range f.Calls() {
		if cmp.Equal(normArgs(args), normArgs(c.Args), argOpts...) {
			return true
		}
	}
	return false
}

var argOpts = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.FilterValues(bothFuncs, cmp.Comparer(sameFunc)),
}

func bothFuncs(a, b any) bool {
	return reflect.ValueOf(a).Kind() == reflect.Func && reflect.ValueOf(b).Kind() == reflect.Func
}

func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func normArgs(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}
