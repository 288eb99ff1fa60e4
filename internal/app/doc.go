// Package app wires the calculator components together and manages the
// application lifecycle: configuration, logging, the operation registry
// (including custom Lua operations), the history log with its logging
// and autosave observers, configuration live reload, and the REPL.
package app
