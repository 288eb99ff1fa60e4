package history

import "sync"

// DefaultMaxSize is the log capacity used when none is configured.
const DefaultMaxSize = 100

// Log is an ordered sequence of records with an undo/redo cursor.
// Records with index < cursor are the active history; records at or
// after the cursor are redoable.
type Log struct {
	mu      sync.Mutex
	records []Record
	cursor  int
	maxSize int
	hooks   []Hook
}

// NewLog creates a log that retains at most maxSize records.
func NewLog(maxSize int) *Log {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Log{maxSize: maxSize}
}

// Record appends a record at the cursor, discarding any redoable
// records beyond it, and advances the cursor. Hooks run after the
// record is committed.
func (l *Log) Record(r Record) {
	l.mu.Lock()
	l.records = append(l.records[:l.cursor], r)
	l.cursor = len(l.records)
	l.trimLocked()
	hooks := make([]Hook, len(l.hooks))
	copy(hooks, l.hooks)
	l.mu.Unlock()

	// Hooks run without the lock so they may read the log.
	for _, h := range hooks {
		h(r)
	}
}

// trimLocked enforces the max size by dropping the oldest records.
func (l *Log) trimLocked() {
	if len(l.records) <= l.maxSize {
		return
	}
	excess := len(l.records) - l.maxSize
	l.records = append([]Record(nil), l.records[excess:]...)
	l.cursor -= excess
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Undo steps the cursor back by one and returns the record now
// excluded from the active history.
func (l *Log) Undo() (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor == 0 {
		return Record{}, ErrNothingToUndo
	}
	l.cursor--
	return l.records[l.cursor], nil
}

// Redo steps the cursor forward by one and returns the record now
// included in the active history.
func (l *Log) Redo() (Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cursor == len(l.records) {
		return Record{}, ErrNothingToRedo
	}
	r := l.records[l.cursor]
	l.cursor++
	return r, nil
}

// Active returns a copy of the records before the cursor.
func (l *Log) Active() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	view := make([]Record, l.cursor)
	copy(view, l.records[:l.cursor])
	return view
}

// Replace swaps the log contents for the given records and places the
// cursor at the end, so nothing is redoable. Used by import.
func (l *Log) Replace(records []Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append([]Record(nil), records...)
	l.cursor = len(l.records)
	l.trimLocked()
}

// Append adds records to the end of the active history, discarding any
// redoable tail. Used by merge import.
func (l *Log) Append(records []Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records[:l.cursor], records...)
	l.cursor = len(l.records)
	l.trimLocked()
}

// Clear removes all records and resets the cursor.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	l.cursor = 0
}

// CanUndo returns true if at least one record is active.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor > 0
}

// CanRedo returns true if at least one record is redoable.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor < len(l.records)
}

// Len returns the total number of records, active and redoable.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Cursor returns the current cursor position.
func (l *Log) Cursor() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// MaxSize returns the configured capacity.
func (l *Log) MaxSize() int {
	return l.maxSize
}
