// Package trigonometry implements the trigonometry service: sine, cosine and
// tangent of an angle in degrees, and a right-triangle solver.
package trigonometry

import (
	"errors"
	"fmt"
	"math"
)

// Function selects a trigonometric function.
type Function string

const (
	Sin Function = "sin"
	Cos Function = "cos"
	Tan Function = "tan"
)

var (
	// ErrUndefinedTangent is returned for tan at 90 + 180k degrees, where the
	// cosine is zero.
	ErrUndefinedTangent = errors.New("tangent is undefined")
	ErrUnknownFunction  = errors.New("unknown trigonometric function")
)

// cosEpsilon is the cosine magnitude below which tan is treated as undefined.
// cos(π/2) evaluates to about 6.1e-17 in float64.
const cosEpsilon = 1e-12

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}

// Evaluate applies fn to an angle given in degrees.
func Evaluate(fn Function, degrees float64) (float64, error) {
	rad := Radians(degrees)

	switch fn {
	case Sin:
		return math.Sin(rad), nil
	case Cos:
		return math.Cos(rad), nil
	case Tan:
		if math.Abs(math.Cos(rad)) < cosEpsilon {
			return 0, fmt.Errorf("%w at %g degrees", ErrUndefinedTangent, degrees)
		}
		return math.Tan(rad), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, fn)
	}
}
