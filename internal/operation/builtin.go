package operation

import (
	"fmt"
	"math"
)

// Builtin returns a registry populated with the standard arithmetic
// operations.
func Builtin() *Registry {
	r := NewRegistry()
	for _, op := range builtins() {
		r.Register(op)
	}
	return r
}

func builtins() []Operation {
	return []Operation{
		{Name: "add", Symbol: "+", Help: "Add two numbers", Fn: add},
		{Name: "subtract", Symbol: "-", Help: "Subtract b from a", Fn: subtract},
		{Name: "multiply", Symbol: "*", Help: "Multiply two numbers", Fn: multiply},
		{Name: "divide", Symbol: "/", Help: "Divide a by b", Fn: divide},
		{Name: "power", Symbol: "^", Help: "Raise a to the power of b", Fn: power},
		{Name: "root", Symbol: "√", Help: "Calculate the bth root of a", Fn: root},
		{Name: "modulus", Symbol: "%", Help: "Calculate a modulo b", Fn: modulus},
		{Name: "int_divide", Symbol: "//", Help: "Integer division of a by b", Fn: intDivide},
		{Name: "percent", Symbol: "%of", Help: "Calculate percentage (a/b * 100)", Fn: percent},
		{Name: "abs_diff", Symbol: "|diff|", Help: "Absolute difference between a and b", Fn: absDiff},
	}
}

func add(a, b float64) (float64, error) {
	return a + b, nil
}

func subtract(a, b float64) (float64, error) {
	return a - b, nil
}

func multiply(a, b float64) (float64, error) {
	return a * b, nil
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func power(a, b float64) (float64, error) {
	// Non-real results (e.g. negative base, fractional exponent) come
	// back as NaN and are rejected by the evaluator.
	return math.Pow(a, b), nil
}

func root(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: cannot calculate 0th root", ErrInvalidArgument)
	}
	if a < 0 && isEvenInteger(b) {
		return 0, fmt.Errorf("%w: cannot calculate even root of negative number", ErrInvalidArgument)
	}
	return math.Pow(a, 1/b), nil
}

// modulus uses floored semantics: a non-zero result takes the sign of
// the divisor.
func modulus(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r, nil
}

func intDivide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return math.Floor(a / b), nil
}

func percent(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return (a / b) * 100, nil
}

func absDiff(a, b float64) (float64, error) {
	return math.Abs(a - b), nil
}

func isEvenInteger(f float64) bool {
	if f != math.Trunc(f) {
		return false
	}
	return math.Mod(math.Abs(f), 2) == 0
}
