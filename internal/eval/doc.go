// Package eval validates and executes calculations.
//
// The Evaluator sits between the command layer and the operation
// registry: it checks operand count and range, dispatches to the
// registered operation, rejects non-real results, rounds to the
// configured precision, and commits a history record on success.
package eval
