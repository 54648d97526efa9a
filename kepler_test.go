package iris

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestSolveKeplerResidual(t *testing.T) {
	// The returned E must satisfy the defining equation across the full
	// anomaly range and the supported eccentricity range.
	for e := 0.0; e <= 0.95; e += 0.05 {
		for M := 0.0; M < 2*math.Pi; M += 0.05 {
			E, err := SolveKepler(M, e)
			if err != nil {
				t.Fatalf("M=%f e=%f: %s", M, e, err)
			}
			residual := E - e*math.Sin(E) - M
			if math.Abs(residual) >= 1e-7 {
				t.Fatalf("M=%f e=%f: residual %e too large", M, e, residual)
			}
		}
	}
}

func TestSolveKeplerCircular(t *testing.T) {
	// With e=0 the equation is the identity: E = M in one step.
	for M := 0.0; M < 2*math.Pi; M += 0.1 {
		E, err := SolveKepler(M, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinAbs(E, M, 1e-12) {
			t.Fatalf("E=%f for M=%f with e=0", E, M)
		}
	}
}

func TestSolveKeplerHighEccentricityGuess(t *testing.T) {
	// Above e=0.8 the initial guess switches to π; the solve must still
	// converge within the budget near periapsis where E₀=M diverges.
	for _, M := range []float64{0.01, 0.1, math.Pi / 2, math.Pi, 5.0} {
		if _, err := SolveKepler(M, 0.93); err != nil {
			t.Fatalf("M=%f e=0.93: %s", M, err)
		}
	}
}

func TestSolveKeplerRejectsHyperbolic(t *testing.T) {
	for _, e := range []float64{-0.1, 1.0, 1.5} {
		_, err := SolveKepler(1.0, e)
		var invalid InvalidElementsError
		if !errors.As(err, &invalid) {
			t.Fatalf("e=%f: got %v, want InvalidElementsError", e, err)
		}
		if invalid.Field != "e" {
			t.Fatalf("wrong field flagged: %s", invalid.Field)
		}
	}
}
