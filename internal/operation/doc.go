// Package operation provides the arithmetic operation registry.
//
// Operations are pure two-operand functions identified by name. The
// Registry maps names to implementations and is the single dispatch
// point for the evaluator:
//
//	reg := operation.Builtin()
//	op, err := reg.Lookup("add")
//	result, err := op.Fn(2, 3)
//
// # Builtin Operations
//
// The builtin set covers add, subtract, multiply, divide, power, root,
// modulus, int_divide, percent, and abs_diff. Divisor-zero violations
// return ErrDivisionByZero; other domain violations (0th root, even
// root of a negative number) return ErrInvalidArgument.
//
// # Custom Operations
//
// Additional operations can be defined in a Lua script loaded with
// Registry.LoadScript. The script calls register(name, fn) for each
// operation it provides:
//
//	register("hypot", function(a, b)
//	    return math.sqrt(a*a + b*b)
//	end)
package operation
