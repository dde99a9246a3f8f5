/*
Package mockfn provides Fn, a small call-recording stand-in for functions.

A Fn records the arguments of every invocation and returns a configurable
result. It never fails a call on its own. Assertions are done afterwards,
either by inspecting Calls or with the Assert helpers.

	save := mockfn.New("save")
	save.ReturnOnce(errBusy).Return(nil)

	// exercise code that calls save.Invoke(...)

	mockfn.AssertCalledTimes(t, save, 2)
	mockfn.AssertCalledWith(t, save, []any{"user-1"})

Reset clears the history and keeps the configured results, so one Fn can be
reused across subtests.
*/
package mockfn
