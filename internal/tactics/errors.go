package tactics

import "errors"

var (
	// ErrInvalidArgument is returned when an operation is called with a bad
	// unit reference, a negative damage amount or inconsistent rules.
	// The engine state is left untouched.
	ErrInvalidArgument = errors.New("tactics: invalid argument")

	// ErrNotImplemented is returned by operations the rules do not define yet.
	ErrNotImplemented = errors.New("tactics: not implemented")
)
