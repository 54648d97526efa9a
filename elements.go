package iris

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Reference frame tags. These are provenance only: no computation in this
// package branches on them, but every state of a single trajectory must
// carry the same tag.
const (
	FrameHeliocentricEcliptic = "heliocentric-ecliptic"
	FrameGeocentricTEME       = "geocentric-teme"
)

// OrbitalElements defines an elliptical orbit via its classical orbital
// elements, anchored to a reference epoch. Internally everything is stored
// in km and radians; the constructors take AU and degrees, which is the unit
// convention of the catalog payloads this engine consumes.
type OrbitalElements struct {
	a, e, i, Ω, ω, M0 float64
	Epoch             time.Time
	Origin            CelestialObject
}

// NewElements builds validated elements from the boundary unit convention:
// semi major axis in AU, angles in degrees, mean anomaly at the reference
// epoch. Fails with InvalidElementsError before any propagation can happen.
func NewElements(aAU, e, i, Ω, ω, M0 float64, epoch time.Time, origin CelestialObject) (OrbitalElements, error) {
	o := OrbitalElements{
		a:      aAU * AU,
		e:      e,
		i:      Deg2rad(i),
		Ω:      Deg2rad(Ω),
		ω:      Deg2rad(ω),
		M0:     Deg2rad(M0),
		Epoch:  epoch,
		Origin: origin,
	}
	if err := o.validate(); err != nil {
		return OrbitalElements{}, err
	}
	return o, nil
}

// NewElementsFromTrueAnomaly builds elements from a true anomaly ν (degrees)
// instead of a mean anomaly, converting through the eccentric anomaly.
func NewElementsFromTrueAnomaly(aAU, e, i, Ω, ω, ν float64, epoch time.Time, origin CelestialObject) (OrbitalElements, error) {
	νRad := Deg2rad(ν)
	sinν2, cosν2 := math.Sincos(νRad / 2)
	E := 2 * math.Atan2(math.Sqrt(1-e)*sinν2, math.Sqrt(1+e)*cosν2)
	M := wrap2Pi(E - e*math.Sin(E))
	return NewElements(aAU, e, i, Ω, ω, Rad2deg(M), epoch, origin)
}

// NewElementsFromState recovers classical elements from a state vector,
// following Vallado's RV2COE. The elements are anchored at the state's
// epoch. Near-circular and near-equatorial states fall back to the argument
// of latitude and the true longitude, matching the quadrant conventions of
// the forward transformation.
func NewElementsFromState(s StateVector, origin CelestialObject) (OrbitalElements, error) {
	hVec := Cross(s.R, s.V)
	nVec := Cross([]float64{0, 0, 1}, hVec)
	v := Norm(s.V)
	r := Norm(s.R)
	ξ := v*v/2 - origin.μ/r
	a := -origin.μ / (2 * ξ)

	eVec := make([]float64, 3)
	rDotV := Dot(s.R, s.V)
	for k := 0; k < 3; k++ {
		eVec[k] = ((v*v-origin.μ/r)*s.R[k] - rDotV*s.V[k]) / origin.μ
	}
	e := Norm(eVec)

	i := math.Acos(hVec[2] / Norm(hVec))
	Ω := math.Acos(nVec[0] / Norm(nVec))
	if math.IsNaN(Ω) {
		Ω = 0 // equatorial, node undefined
	} else if nVec[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	ω := math.Acos(Dot(nVec, eVec) / (Norm(nVec) * e))
	if math.IsNaN(ω) {
		ω = 0
	} else if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}

	var ν float64
	if e > 1e-9 {
		cosν := Dot(eVec, s.R) / (e * r)
		// Rounding can push |cosν| infinitesimally past 1 and turn Acos
		// into NaN.
		if cosν > 1 {
			cosν = 1
		} else if cosν < -1 {
			cosν = -1
		}
		ν = math.Acos(cosν)
		if rDotV < 0 {
			ν = 2*math.Pi - ν
		}
	} else if nn := Norm(nVec); nn > 1e-9 {
		// Circular inclined: measure from the ascending node.
		ν = math.Acos(Dot(nVec, s.R) / (nn * r))
		if s.R[2] < 0 {
			ν = 2*math.Pi - ν
		}
	} else {
		// Circular equatorial: true longitude.
		ν = math.Atan2(s.R[1], s.R[0])
	}

	sinν2, cosν2 := math.Sincos(ν / 2)
	E := 2 * math.Atan2(math.Sqrt(1-e)*sinν2, math.Sqrt(1+e)*cosν2)
	M := wrap2Pi(E - e*math.Sin(E))

	o := OrbitalElements{
		a:      a,
		e:      e,
		i:      wrap2Pi(i),
		Ω:      wrap2Pi(Ω),
		ω:      wrap2Pi(ω),
		M0:     M,
		Epoch:  s.Epoch,
		Origin: origin,
	}
	if err := o.validate(); err != nil {
		return OrbitalElements{}, err
	}
	return o, nil
}

func (o OrbitalElements) validate() error {
	if o.a <= 0 || math.IsNaN(o.a) {
		return InvalidElementsError{Field: "a", Value: o.a / AU}
	}
	if o.e < 0 || o.e >= 1 || math.IsNaN(o.e) {
		return InvalidElementsError{Field: "e", Value: o.e}
	}
	return nil
}

// Elements returns the six stored elements in km and radians.
func (o OrbitalElements) Elements() (a, e, i, Ω, ω, M0 float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.M0
}

// SemiMajorAxisAU returns a in the boundary unit.
func (o OrbitalElements) SemiMajorAxisAU() float64 {
	return o.a / AU
}

// MeanMotion returns n = sqrt(μ/a³) in rad/s.
func (o OrbitalElements) MeanMotion() float64 {
	return math.Sqrt(o.Origin.μ / math.Pow(o.a, 3))
}

// Period returns the orbital period. Periods beyond the time.Duration range
// (a above roughly 44 AU around the Sun) saturate at the maximum duration
// instead of wrapping.
func (o OrbitalElements) Period() time.Duration {
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.Origin.μ)
	if seconds >= float64(math.MaxInt64)/float64(time.Second) {
		return math.MaxInt64
	}
	return time.Duration(seconds * float64(time.Second))
}

// Apoapsis returns the apoapsis radius in km.
func (o OrbitalElements) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis radius in km.
func (o OrbitalElements) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// AtEpoch returns a copy of these elements re-anchored at the given epoch,
// keeping the same anomaly. This is how the window scanner models the same
// departure orbit occupied at a different departure time.
func (o OrbitalElements) AtEpoch(epoch time.Time) OrbitalElements {
	o.Epoch = epoch
	return o
}

// String implements the stringer interface.
func (o OrbitalElements) String() string {
	return fmt.Sprintf("a=%.4f AU e=%.4f i=%.3f Ω=%.3f ω=%.3f M₀=%.3f @ %s",
		o.a/AU, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.M0), o.Epoch.Format(time.RFC3339))
}

// StateVector is a position/velocity pair at an absolute instant. R is in km
// and V in km/s, both expressed in the frame named by Frame.
type StateVector struct {
	Epoch time.Time
	R     []float64
	V     []float64
	Frame string
}

// RNorm returns the distance from the frame origin in km.
func (s StateVector) RNorm() float64 {
	return Norm(s.R)
}

// VNorm returns the speed in km/s.
func (s StateVector) VNorm() float64 {
	return Norm(s.V)
}

// Trajectory is a sequence of state vectors strictly increasing by epoch,
// all in the same frame and unit system.
type Trajectory []StateVector

// Span returns the first and last epoch covered. Zero times for an empty
// trajectory.
func (t Trajectory) Span() (start, end time.Time) {
	if len(t) == 0 {
		return
	}
	return t[0].Epoch, t[len(t)-1].Epoch
}

// Slice returns the sub-trajectory whose epochs fall within [from, to],
// bounds included. The result shares the backing array: trajectories are
// consumed by value and never mutated.
func (t Trajectory) Slice(from, to time.Time) Trajectory {
	lo := 0
	for lo < len(t) && t[lo].Epoch.Before(from) {
		lo++
	}
	hi := len(t)
	for hi > lo && t[hi-1].Epoch.After(to) {
		hi--
	}
	return t[lo:hi]
}

// JDFromTime returns the Julian Date of the given instant.
func JDFromTime(dt time.Time) float64 {
	return julian.TimeToJD(dt)
}

// TimeFromJD returns the instant of the given Julian Date, in UTC.
func TimeFromJD(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}
