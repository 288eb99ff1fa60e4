// Package repl implements the interactive read-eval-print loop.
//
// The loop reads one whitespace-tokenized line at a time, classifies it
// as a calculation (operation plus two operands) or a meta command
// (undo, redo, history, clear, save, load, export, import, help, quit),
// dispatches it, and prints the result or a recoverable error message.
// End of input ends the session cleanly.
package repl
