package internal

import "github.com/lstoll/expressmock/express"

// UnwrapTo walks back a chain of wrapped responses until it finds one that
// is a T. Wrappers expose what they wrap with an Unwrap() express.Response
// method, the walk stops at the first response without one.
func UnwrapTo[T any](res express.Response) (T, bool) {
	current := res
	for current != nil {
		if target, ok := current.(T); ok {
			return target, true
		}

		unwrapper, ok := current.(interface {
			Unwrap() express.Response
		})
		if !ok {
			break
		}
		current = unwrapper.Unwrap()
	}
	var zero T
	return zero, false
}
