package persist

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord indicates a CSV row that cannot be parsed into a
// calculation record.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes which row of an import failed and why.
type MalformedRecordError struct {
	// Row is the 1-based data row number (0 for the header).
	Row int

	// Field is the offending column name, if known.
	Field string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed header: %v", e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("malformed record at row %d (%s): %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("malformed record at row %d: %v", e.Row, e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is matches MalformedRecordError against ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
