package history

import (
	"fmt"
	"strconv"
	"time"
)

// Record is a single completed calculation. Immutable once created.
type Record struct {
	// Op is the operation name (e.g. "add").
	Op string

	// A and B are the operands in input order.
	A float64
	B float64

	// Result is the computed value.
	Result float64

	// At is when the calculation was performed.
	At time.Time
}

// String renders the record as "op(a, b) = result".
func (r Record) String() string {
	return fmt.Sprintf("%s(%s, %s) = %s",
		r.Op, FormatNumber(r.A), FormatNumber(r.B), FormatNumber(r.Result))
}

// FormatNumber renders a float with the shortest representation that
// round-trips exactly through strconv.ParseFloat.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
