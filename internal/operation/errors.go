package operation

import "errors"

// Errors returned by operations and the registry.
var (
	// ErrUnknownOperation indicates the named operation is not registered.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrDivisionByZero indicates a zero divisor in a division-like operation.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidArgument indicates operands outside an operation's domain.
	ErrInvalidArgument = errors.New("invalid argument")
)
