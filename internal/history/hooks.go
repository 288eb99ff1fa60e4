package history

// Hook is called synchronously after each committed record.
// Hooks must not call Record on the same log.
type Hook func(Record)

// AddHook registers a post-commit hook. Hooks run in registration
// order after every successful Record call.
func (l *Log) AddHook(h Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, h)
}
