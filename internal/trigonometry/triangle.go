package trigonometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientData is returned when fewer than two of opposite,
	// adjacent and hypotenuse are known.
	ErrInsufficientData = errors.New("insufficient triangle data: two of opposite, adjacent, hypotenuse are required")

	// ErrInvalidTriangle is returned when the known sides describe no right
	// triangle: a side ratio outside [-1, 1] or a degenerate result.
	ErrInvalidTriangle = errors.New("invalid triangle")
)

// Triangle is a fully solved right triangle; Theta is in degrees and is the
// angle between the adjacent side and the hypotenuse.
type Triangle struct {
	Opposite   float64 `json:"opposite"`
	Adjacent   float64 `json:"adjacent"`
	Hypotenuse float64 `json:"hypotenuse"`
	Theta      float64 `json:"theta"`
}

// TriangleInput is the JSON body for POST /trigonometry/calculate. Theta is
// accepted but not used.
type TriangleInput struct {
	Opposite   *float64 `json:"opposite" validate:"omitempty,gte=0"`
	Adjacent   *float64 `json:"adjacent" validate:"omitempty,gte=0"`
	Hypotenuse *float64 `json:"hypotenuse" validate:"omitempty,gte=0"`
	Theta      *float64 `json:"theta"`
}

// KnownSides is the pair of sides a triangle is solved from. It is one of
// OppositeHypotenuse, AdjacentHypotenuse or OppositeAdjacent.
type KnownSides interface {
	solve() (Triangle, error)
}

type OppositeHypotenuse struct{ Opposite, Hypotenuse float64 }

type AdjacentHypotenuse struct{ Adjacent, Hypotenuse float64 }

type OppositeAdjacent struct{ Opposite, Adjacent float64 }

// Classify picks the known pair from in. When more than two sides are given
// the first match in the order opposite+hypotenuse, adjacent+hypotenuse,
// opposite+adjacent wins.
func Classify(in TriangleInput) (KnownSides, error) {
	switch {
	case in.Opposite != nil && in.Hypotenuse != nil:
		return OppositeHypotenuse{Opposite: *in.Opposite, Hypotenuse: *in.Hypotenuse}, nil
	case in.Adjacent != nil && in.Hypotenuse != nil:
		return AdjacentHypotenuse{Adjacent: *in.Adjacent, Hypotenuse: *in.Hypotenuse}, nil
	case in.Opposite != nil && in.Adjacent != nil:
		return OppositeAdjacent{Opposite: *in.Opposite, Adjacent: *in.Adjacent}, nil
	default:
		return nil, ErrInsufficientData
	}
}

// Solve derives the missing side and the angle from the known pair.
func Solve(sides KnownSides) (Triangle, error) {
	if sides == nil {
		return Triangle{}, ErrInsufficientData
	}
	return sides.solve()
}

// SolveInput classifies in and solves it.
func SolveInput(in TriangleInput) (Triangle, error) {
	sides, err := Classify(in)
	if err != nil {
		return Triangle{}, err
	}
	return Solve(sides)
}

func (s OppositeHypotenuse) solve() (Triangle, error) {
	ratio := s.Opposite / s.Hypotenuse
	if !unitRatio(ratio) {
		return Triangle{}, fmt.Errorf("%w: opposite/hypotenuse = %g is outside [-1, 1]", ErrInvalidTriangle, ratio)
	}
	theta := math.Asin(ratio)
	return newTriangle(s.Opposite, math.Cos(theta)*s.Hypotenuse, s.Hypotenuse, theta)
}

func (s AdjacentHypotenuse) solve() (Triangle, error) {
	ratio := s.Adjacent / s.Hypotenuse
	if !unitRatio(ratio) {
		return Triangle{}, fmt.Errorf("%w: adjacent/hypotenuse = %g is outside [-1, 1]", ErrInvalidTriangle, ratio)
	}
	theta := math.Acos(ratio)
	return newTriangle(math.Sin(theta)*s.Hypotenuse, s.Adjacent, s.Hypotenuse, theta)
}

// With Adjacent == 0 the ratio is ±Inf and atan gives exactly ±90°, so the
// hypotenuse equals the opposite side.
func (s OppositeAdjacent) solve() (Triangle, error) {
	theta := math.Atan(s.Opposite / s.Adjacent)
	return newTriangle(s.Opposite, s.Adjacent, s.Opposite/math.Sin(theta), theta)
}

func unitRatio(r float64) bool {
	return !math.IsNaN(r) && r >= -1 && r <= 1
}

func newTriangle(opposite, adjacent, hypotenuse, theta float64) (Triangle, error) {
	for _, v := range [...]float64{opposite, adjacent, hypotenuse, theta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Triangle{}, fmt.Errorf("%w: degenerate triangle (opposite=%g adjacent=%g hypotenuse=%g)",
				ErrInvalidTriangle, opposite, adjacent, hypotenuse)
		}
	}

	return Triangle{
		Opposite:   opposite,
		Adjacent:   adjacent,
		Hypotenuse: hypotenuse,
		Theta:      Degrees(theta),
	}, nil
}
