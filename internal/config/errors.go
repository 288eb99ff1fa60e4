package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a setting value outside its allowed range
// or enum.
var ErrInvalidValue = errors.New("invalid config value")

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Key is the setting name (TOML key form).
	Key string
	// Value is the offending value.
	Value any
	// Message describes the constraint.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s (value: %v)", e.Key, e.Message, e.Value)
}

// Is matches ValidationError against ErrInvalidValue.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}
