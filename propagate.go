package iris

import (
	"fmt"
	"math"
	"time"
)

// StateAt returns the state vector of the orbit at the given instant,
// expressed in the inertial frame of the origin body. Each call is a pure
// function of the elements and the instant: there is no recurrence between
// samples, which is what makes grid propagation embarrassingly parallel.
func (o OrbitalElements) StateAt(dt time.Time) (StateVector, error) {
	if err := o.validate(); err != nil {
		return StateVector{}, err
	}
	Δt := dt.Sub(o.Epoch).Seconds()
	M := wrap2Pi(o.M0 + o.MeanMotion()*Δt)
	E, err := SolveKepler(M, o.e)
	if err != nil {
		return StateVector{}, err
	}
	sinE2, cosE2 := math.Sincos(E / 2)
	ν := 2 * math.Atan2(math.Sqrt(1+o.e)*sinE2, math.Sqrt(1-o.e)*cosE2)
	r := o.a * (1 - o.e*math.Cos(E))

	sinν, cosν := math.Sincos(ν)
	R := PQW2ECI(o.i, o.ω, o.Ω, []float64{r * cosν, r * sinν, 0})

	// Velocity from the specific angular momentum, decomposed into radial
	// and transverse components in the perifocal plane.
	h := math.Sqrt(o.Origin.μ * o.a * (1 - o.e*o.e))
	vR := (o.Origin.μ / h) * o.e * sinν
	vT := h / r
	V := PQW2ECI(o.i, o.ω, o.Ω, []float64{vR*cosν - vT*sinν, vR*sinν + vT*cosν, 0})

	return StateVector{Epoch: dt, R: R, V: V, Frame: FrameHeliocentricEcliptic}, nil
}

// Propagate samples the orbit over a fixed-step time grid and returns the
// trajectory, inclusive of both ends when the step divides the interval
// evenly. The grid must be well formed: that is a programmer error, not a
// data error, hence the panic.
func (o OrbitalElements) Propagate(start, end time.Time, step time.Duration) (Trajectory, error) {
	if step <= 0 {
		panic(fmt.Errorf("non-positive propagation step %s", step))
	}
	if end.Before(start) {
		panic(fmt.Errorf("propagation grid ends (%s) before it starts (%s)", end, start))
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	traj := make(Trajectory, 0, int(end.Sub(start)/step)+1)
	for dt := start; !dt.After(end); dt = dt.Add(step) {
		state, err := o.StateAt(dt)
		if err != nil {
			return nil, err
		}
		traj = append(traj, state)
	}
	return traj, nil
}
