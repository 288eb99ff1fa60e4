package eval

import (
	"fmt"
	"math"
	"time"

	"github.com/dshills/reckon/internal/history"
	"github.com/dshills/reckon/internal/operation"
)

// Defaults applied when options are unset.
const (
	DefaultPrecision = 2
	DefaultMaxInput  = 1_000_000.0
)

// Options configures an Evaluator.
type Options struct {
	// Precision is the number of decimal places results are rounded to.
	// Negative means use DefaultPrecision.
	Precision int

	// MaxInput bounds the absolute value of accepted operands.
	// Zero or negative means use DefaultMaxInput.
	MaxInput float64
}

// Evaluator executes operations and records successful calculations.
type Evaluator struct {
	reg       *operation.Registry
	log       *history.Log
	precision int
	maxInput  float64
}

// New creates an evaluator over the given registry. Successful
// calculations are appended to log; a nil log disables recording.
func New(reg *operation.Registry, log *history.Log, opts Options) *Evaluator {
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}
	if opts.MaxInput <= 0 {
		opts.MaxInput = DefaultMaxInput
	}
	return &Evaluator{
		reg:       reg,
		log:       log,
		precision: opts.Precision,
		maxInput:  opts.MaxInput,
	}
}

// Evaluate runs the named operation on the operands, returning the
// committed record. Exactly two operands are required.
func (e *Evaluator) Evaluate(name operation.Kind, operands []float64) (history.Record, error) {
	if len(operands) != 2 {
		return history.Record{}, fmt.Errorf("%w: %s takes 2 operands, got %d",
			operation.ErrInvalidArgument, name, len(operands))
	}
	for i, v := range operands {
		if math.Abs(v) > e.maxInput {
			return history.Record{}, fmt.Errorf("%w: operand %d exceeds maximum allowed value of %s",
				operation.ErrInvalidArgument, i+1, history.FormatNumber(e.maxInput))
		}
	}

	op, err := e.reg.Lookup(name)
	if err != nil {
		return history.Record{}, err
	}

	a, b := operands[0], operands[1]
	result, err := op.Fn(a, b)
	if err != nil {
		return history.Record{}, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return history.Record{}, fmt.Errorf("%w: %s(%s, %s) has no real result",
			operation.ErrInvalidArgument, name, history.FormatNumber(a), history.FormatNumber(b))
	}

	rec := history.Record{
		Op:     string(name),
		A:      a,
		B:      b,
		Result: round(result, e.precision),
		At:     time.Now(),
	}
	if e.log != nil {
		e.log.Record(rec)
	}
	return rec, nil
}

// round rounds f to n decimal places.
func round(f float64, n int) float64 {
	pow := math.Pow(10, float64(n))
	return math.Round(f*pow) / pow
}
