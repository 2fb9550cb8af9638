// Package arithmetic implements the arithmetic service: binary operations on
// two operands and chained evaluation on a running total.
package arithmetic

import (
	"errors"
	"fmt"
	"math"
)

// Operator selects a binary operation.
type Operator string

const (
	Add      Operator = "add"
	Subtract Operator = "subtract"
	Multiply Operator = "multiply"
	Divide   Operator = "divide"
)

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrNotFinite       = errors.New("result is not a finite number")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Evaluate applies op to a and b. Division by zero and results that overflow
// to ±Inf are errors rather than IEEE special values.
func Evaluate(op Operator, a, b float64) (float64, error) {
	var result float64

	switch op {
	case Add:
		result = a + b
	case Subtract:
		result = a - b
	case Multiply:
		result = a * b
	case Divide:
		if b == 0 {
			return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, a, b)
		}
		result = a / b
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: %s(%g, %g)", ErrNotFinite, op, a, b)
	}
	return result, nil
}

// Step is one operation of a chain, applied as running <op> Value.
type Step struct {
	Op    Operator
	Value float64
}

// StepError reports the chain step that failed.
type StepError struct {
	Index int
	Op    Operator
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
