package history

import "errors"

// Errors returned by log operations.
var (
	// ErrNothingToUndo indicates the cursor is at the start of the log.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the cursor is at the end of the log.
	ErrNothingToRedo = errors.New("nothing to redo")
)
