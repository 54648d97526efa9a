package iris

import "fmt"

// The engine surfaces exactly four kinds of failure. Each kind is its own
// type so that callers can dispatch with errors.As instead of string
// matching; none of them is ever silently replaced by a default value.

// InvalidElementsError reports orbital elements which fail validation before
// any propagation begins.
type InvalidElementsError struct {
	Field string
	Value float64
}

func (e InvalidElementsError) Error() string {
	return fmt.Sprintf("invalid orbital elements: %s=%g unsupported by the elliptical propagator", e.Field, e.Value)
}

// NumericDivergenceError reports a Kepler solve which did not meet any
// convergence criterion within the iteration budget. The last iterate is
// deliberately not returned: an unconverged anomaly looks like a plausible
// answer and masks the failure downstream.
type NumericDivergenceError struct {
	MeanAnomaly  float64
	Eccentricity float64
	Iterations   int
}

func (e NumericDivergenceError) Error() string {
	return fmt.Sprintf("kepler solver did not converge after %d iterations (M=%g, e=%g)", e.Iterations, e.MeanAnomaly, e.Eccentricity)
}

// InsufficientDataError reports an empty trajectory handed to the intercept
// search or the launch window scanner.
type InsufficientDataError struct {
	Trajectory string // "target" or "interceptor"
}

func (e InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %s trajectory is empty", e.Trajectory)
}

// InvalidPropulsionTypeError reports a propulsion tag absent from the Isp
// table.
type InvalidPropulsionTypeError struct {
	Tag PropulsionType
}

func (e InvalidPropulsionTypeError) Error() string {
	return fmt.Sprintf("unknown propulsion type %q", e.Tag)
}
