package iris

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestElementsGeometry(t *testing.T) {
	o, err := NewElements(2, 0.5, 5, 10, 20, 0, testEpoch, Sun)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(o.Periapsis(), 1*AU, distanceε) {
		t.Fatalf("periapsis %f km", o.Periapsis())
	}
	if !floats.EqualWithinAbs(o.Apoapsis(), 3*AU, distanceε) {
		t.Fatalf("apoapsis %f km", o.Apoapsis())
	}
	if !floats.EqualWithinAbs(o.SemiMajorAxisAU(), 2, 1e-12) {
		t.Fatalf("a=%f AU", o.SemiMajorAxisAU())
	}
	// Kepler's third law: a=1 AU around the Sun is one year.
	oEarthLike, _ := NewElements(1, 0, 0, 0, 0, 0, testEpoch, Sun)
	if days := oEarthLike.Period().Hours() / 24; !floats.EqualWithinAbs(days, 365.25, 0.1) {
		t.Fatalf("period %f days", days)
	}
}

func TestTrajectorySliceAndSpan(t *testing.T) {
	traj := Trajectory{
		syntheticState(0, AU, 0, 0, 0),
		syntheticState(1, AU, 0, 0, 0),
		syntheticState(2, AU, 0, 0, 0),
		syntheticState(3, AU, 0, 0, 0),
	}
	start, end := traj.Span()
	if !start.Equal(traj[0].Epoch) || !end.Equal(traj[3].Epoch) {
		t.Fatal("span mismatch")
	}
	sub := traj.Slice(traj[1].Epoch, traj[2].Epoch)
	if len(sub) != 2 || !sub[0].Epoch.Equal(traj[1].Epoch) {
		t.Fatalf("slice returned %d samples", len(sub))
	}
	if len(traj.Slice(traj[3].Epoch.Add(time.Hour), traj[3].Epoch.Add(2*time.Hour))) != 0 {
		t.Fatal("slice outside coverage not empty")
	}
	var empty Trajectory
	if s, e := empty.Span(); !s.IsZero() || !e.IsZero() {
		t.Fatal("empty span not zero")
	}
}

func TestJulianDateRoundtrip(t *testing.T) {
	// J2000.0 reference epoch.
	j2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if jd := JDFromTime(j2000); !floats.EqualWithinAbs(jd, 2451545.0, 1e-6) {
		t.Fatalf("JD(J2000) = %f", jd)
	}
	back := TimeFromJD(2451545.0)
	if d := back.Sub(j2000); d > time.Second || d < -time.Second {
		t.Fatalf("roundtrip drift %s", d)
	}
}

func TestPeriodDistantOrbits(t *testing.T) {
	// Neptune-distance orbit: a=30 AU is 164.3 years, still representable
	// as a time.Duration.
	neptuneLike, err := NewElements(30, 0, 0, 0, 0, 0, testEpoch, Sun)
	if err != nil {
		t.Fatal(err)
	}
	years := neptuneLike.Period().Hours() / 24 / 365.25
	if !floats.EqualWithinAbs(years, 164.3, 0.1) {
		t.Fatalf("period %f years", years)
	}

	// a=100 AU is a millennium, past the time.Duration range. The period
	// must saturate, never wrap or collapse to zero.
	distant, err := NewElements(100, 0, 0, 0, 0, 0, testEpoch, Sun)
	if err != nil {
		t.Fatal(err)
	}
	if p := distant.Period(); p != math.MaxInt64 {
		t.Fatalf("period %s did not saturate", p)
	}
	if !testEpoch.Add(distant.Period()).After(testEpoch) {
		t.Fatal("saturated period is not in the future")
	}
}
