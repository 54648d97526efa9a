package iris

import "math"

const (
	keplerTolerance = 1e-8  // absolute tolerance on the eccentric anomaly step
	keplerMaxIter   = 20    // hard iteration budget
	keplerDerivε    = 1e-12 // derivative magnitude below which Newton cannot proceed
	keplerHighEcc   = 0.8   // above this, E₀ = M converges poorly, use π instead
)

// SolveKepler solves Kepler's equation M = E - e·sin(E) for the eccentric
// anomaly E via Newton-Raphson. M is the mean anomaly in radians and e the
// eccentricity in [0, 1). A solve which does not converge within the
// iteration budget fails with NumericDivergenceError: the last iterate is
// never returned as if it were an answer.
func SolveKepler(M, e float64) (float64, error) {
	if e < 0 || e >= 1 {
		return 0, InvalidElementsError{Field: "e", Value: e}
	}
	E := M
	if e >= keplerHighEcc {
		E = math.Pi
	}
	for iter := 0; iter < keplerMaxIter; iter++ {
		f := E - e*math.Sin(E) - M
		fPrime := 1 - e*math.Cos(E)
		if math.Abs(fPrime) < keplerDerivε {
			// Unreachable for e < 1 since f' >= 1-e, kept as a guard
			// against a stalled iteration rather than a silent return.
			return 0, NumericDivergenceError{MeanAnomaly: M, Eccentricity: e, Iterations: iter}
		}
		ENext := E - f/fPrime
		if math.Abs(ENext-E) < keplerTolerance {
			return ENext, nil
		}
		E = ENext
	}
	return 0, NumericDivergenceError{MeanAnomaly: M, Eccentricity: e, Iterations: keplerMaxIter}
}
