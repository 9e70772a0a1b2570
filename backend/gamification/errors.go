package gamification

import "errors"

var (
	// ErrUserNotFound is returned by Store implementations when the user id
	// does not exist. The call fails without touching any state.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCounterState rejects updates that would corrupt the
	// counters, e.g. a negative activity count.
	ErrInvalidCounterState = errors.New("invalid counter state")

	// ErrUnknownEvent rejects activity events the engine does not know.
	ErrUnknownEvent = errors.New("unknown activity event")
)
