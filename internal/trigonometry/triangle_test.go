package trigonometry

import (
	"errors"
	"math"
	"testing"

	"calcservice/internal/testutil"
)

const triangleTol = 1e-6

func ptr(v float64) *float64 { return &v }

func assertTriangle(t *testing.T, want, got Triangle) {
	t.Helper()
	testutil.AssertFloat(t, "opposite", want.Opposite, got.Opposite, triangleTol)
	testutil.AssertFloat(t, "adjacent", want.Adjacent, got.Adjacent, triangleTol)
	testutil.AssertFloat(t, "hypotenuse", want.Hypotenuse, got.Hypotenuse, triangleTol)
	testutil.AssertFloat(t, "theta", want.Theta, got.Theta, triangleTol)
}

func TestSolveThreeFourFive(t *testing.T) {
	want := Triangle{Opposite: 3, Adjacent: 4, Hypotenuse: 5, Theta: Degrees(math.Atan2(3, 4))}

	tests := []struct {
		name string
		in   TriangleInput
	}{
		{name: "opposite and hypotenuse", in: TriangleInput{Opposite: ptr(3), Hypotenuse: ptr(5)}},
		{name: "adjacent and hypotenuse", in: TriangleInput{Adjacent: ptr(4), Hypotenuse: ptr(5)}},
		{name: "opposite and adjacent", in: TriangleInput{Opposite: ptr(3), Adjacent: ptr(4)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SolveInput(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertTriangle(t, want, got)
			testutil.AssertFloat(t, "theta degrees", 36.8698976, got.Theta, 1e-6)
		})
	}
}

func TestSolveRoundTrip(t *testing.T) {
	for _, deg := range []float64{1, 15, 30, 45, 60, 72.5, 89} {
		for _, h := range []float64{0.5, 1, 10, 1234.5} {
			rad := Radians(deg)
			want := Triangle{Opposite: h * math.Sin(rad), Adjacent: h * math.Cos(rad), Hypotenuse: h, Theta: deg}

			pairs := []KnownSides{
				OppositeHypotenuse{Opposite: want.Opposite, Hypotenuse: h},
				AdjacentHypotenuse{Adjacent: want.Adjacent, Hypotenuse: h},
				OppositeAdjacent{Opposite: want.Opposite, Adjacent: want.Adjacent},
			}
			for _, sides := range pairs {
				got, err := Solve(sides)
				if err != nil {
					t.Fatalf("%T at %g°, h=%g: unexpected error: %v", sides, deg, h, err)
				}
				assertTriangle(t, want, got)
			}
		}
	}
}

func TestSolvedTriangleIsConsistent(t *testing.T) {
	got, err := SolveInput(TriangleInput{Opposite: ptr(7), Adjacent: ptr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rad := Radians(got.Theta)
	testutil.AssertFloat(t, "o = h·sin", got.Opposite, got.Hypotenuse*math.Sin(rad), triangleTol)
	testutil.AssertFloat(t, "a = h·cos", got.Adjacent, got.Hypotenuse*math.Cos(rad), triangleTol)
	testutil.AssertFloat(t, "o/a = tan", got.Opposite/got.Adjacent, math.Tan(rad), triangleTol)
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name string
		in   TriangleInput
		want KnownSides
	}{
		{
			name: "all three sides prefer opposite and hypotenuse",
			in:   TriangleInput{Opposite: ptr(3), Adjacent: ptr(100), Hypotenuse: ptr(5)},
			want: OppositeHypotenuse{Opposite: 3, Hypotenuse: 5},
		},
		{
			name: "adjacent and hypotenuse",
			in:   TriangleInput{Adjacent: ptr(4), Hypotenuse: ptr(5), Theta: ptr(10)},
			want: AdjacentHypotenuse{Adjacent: 4, Hypotenuse: 5},
		},
		{
			name: "opposite and adjacent",
			in:   TriangleInput{Opposite: ptr(3), Adjacent: ptr(4)},
			want: OppositeAdjacent{Opposite: 3, Adjacent: 4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestSolveInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		in   TriangleInput
	}{
		{name: "empty", in: TriangleInput{}},
		{name: "one side", in: TriangleInput{Hypotenuse: ptr(5)}},
		{name: "one side with theta", in: TriangleInput{Opposite: ptr(5), Theta: ptr(30)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SolveInput(tc.in)
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
			if got != (Triangle{}) {
				t.Fatalf("expected zero triangle, got %#v", got)
			}
		})
	}

	if _, err := Solve(nil); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Solve(nil): expected ErrInsufficientData, got %v", err)
	}
}

func TestSolveInvalidTriangle(t *testing.T) {
	tests := []struct {
		name  string
		sides KnownSides
	}{
		{name: "opposite longer than hypotenuse", sides: OppositeHypotenuse{Opposite: 10, Hypotenuse: 5}},
		{name: "adjacent longer than hypotenuse", sides: AdjacentHypotenuse{Adjacent: 6, Hypotenuse: 5}},
		{name: "zero over zero", sides: OppositeHypotenuse{Opposite: 0, Hypotenuse: 0}},
		{name: "zero hypotenuse", sides: AdjacentHypotenuse{Adjacent: 1, Hypotenuse: 0}},
		{name: "no legs", sides: OppositeAdjacent{Opposite: 0, Adjacent: 0}},
		{name: "flat triangle", sides: OppositeAdjacent{Opposite: 0, Adjacent: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Solve(tc.sides)
			if !errors.Is(err, ErrInvalidTriangle) {
				t.Fatalf("expected ErrInvalidTriangle, got %v (%#v)", err, got)
			}
		})
	}
}

func TestSolveVerticalTangent(t *testing.T) {
	got, err := Solve(OppositeAdjacent{Opposite: 3, Adjacent: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertTriangle(t, Triangle{Opposite: 3, Adjacent: 0, Hypotenuse: 3, Theta: 90}, got)
}
