package databus

import "errors"

var (
	// ErrRedundantKey is returned when a subscriber tries to bind a handler to a
	// single-handler slot that already has one. The existing handler stays bound.
	ErrRedundantKey = errors.New("redundant key")

	// ErrBadKey is returned when a key fails validation. Keys are validated only
	// when they implement KeyValidator.
	ErrBadKey = errors.New("bad key")

	// ErrNilHandler is returned when a subscriber is created with a nil handler.
	ErrNilHandler = errors.New("handler is nil")

	// ErrUnknownDiscipline is returned when a discipline name cannot be parsed.
	ErrUnknownDiscipline = errors.New("unknown slot discipline")

	// ErrHandlerPanic wraps a panic recovered by the Recover decorator.
	ErrHandlerPanic = errors.New("handler panicked")
)
