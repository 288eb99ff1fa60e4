// Package history provides the calculation log with undo/redo support.
//
// The Log is an append-only sequence of immutable Records with a cursor
// marking the current position. Records before the cursor form the
// active history; records at or after it are redoable. Recording a new
// calculation after an undo truncates the redo tail:
//
//	log := history.NewLog(100)
//	log.Record(rec)          // append at cursor, cursor++
//	prev, err := log.Undo()  // cursor--, returns the excluded record
//	next, err := log.Redo()  // returns record at cursor, cursor++
//	view := log.Active()     // records before the cursor
//
// # Hooks
//
// Hooks registered with AddHook run synchronously after each committed
// record, in registration order. The application layer uses them for
// calculation logging and autosave.
package history
