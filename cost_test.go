package iris

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestHohmannEarthToMarsRadii(t *testing.T) {
	// Transfer between circular 1 AU and 1.524 AU heliocentric orbits.
	// Textbook values: ~32.73 km/s at departure, ~258 day time of flight.
	vDep, vArr, tof := Hohmann(AU, 1.524*AU, Sun)
	if !floats.EqualWithinAbs(vDep, 32.73, 0.05) {
		t.Fatalf("vDeparture = %f km/s", vDep)
	}
	if !floats.EqualWithinAbs(vArr, 21.48, 0.05) {
		t.Fatalf("vArrival = %f km/s", vArr)
	}
	days := tof.Hours() / 24
	if !floats.EqualWithinAbs(days, 258.9, 1) {
		t.Fatalf("tof = %f days", days)
	}
}

func TestCostForMarsRadiusIntercept(t *testing.T) {
	res := InterceptResult{
		Target:       syntheticState(0, 1.524*AU, 0, 0, 24),
		MissDistance: 0.005 * AU,
	}
	cost, err := res.CostFor(PropulsionIon)
	if err != nil {
		t.Fatal(err)
	}
	// Departure Δv for this geometry is ~2.94 km/s, margined by 1.5.
	if !floats.EqualWithinAbs(cost.ΔV, 2.94*1.5, 0.05) {
		t.Fatalf("Δv = %f km/s", cost.ΔV)
	}
	// Rocket equation with the ion table entry (3000 s).
	ve := 3000 * g0
	wantFuel := 1 - math.Exp(-cost.ΔV/ve)
	if !floats.EqualWithinAbs(cost.FuelFraction, wantFuel, 1e-9) {
		t.Fatalf("fuel fraction = %f, want %f", cost.FuelFraction, wantFuel)
	}
	if cost.SuccessScore != 0.75 {
		t.Fatalf("score = %f for a miss inside the threshold", cost.SuccessScore)
	}
}

func TestFuelFractionMonotonicInΔV(t *testing.T) {
	// Widening target radii increase the required Δv; for a fixed Isp the
	// fuel fraction must strictly increase and stay in [0, 1).
	prev := -1.0
	for _, rAU := range []float64{1.1, 1.5, 2.5, 5, 15, 30} {
		res := InterceptResult{Target: syntheticState(0, rAU*AU, 0, 0, 0)}
		cost, err := res.CostFor(PropulsionChemical)
		if err != nil {
			t.Fatal(err)
		}
		if cost.FuelFraction < 0 || cost.FuelFraction >= 1 {
			t.Fatalf("fuel fraction %f out of [0,1) at r=%f AU", cost.FuelFraction, rAU)
		}
		if cost.FuelFraction <= prev {
			t.Fatalf("fuel fraction not strictly increasing at r=%f AU: %f <= %f", rAU, cost.FuelFraction, prev)
		}
		prev = cost.FuelFraction
	}
}

func TestCostForFlightTimeHalfPeriod(t *testing.T) {
	res := InterceptResult{Target: syntheticState(0, 2*AU, 0, 0, 0)}
	cost, err := res.CostFor(PropulsionChemical)
	if err != nil {
		t.Fatal(err)
	}
	aTransfer := 0.5 * (AU + 2*AU)
	want := math.Pi * math.Sqrt(math.Pow(aTransfer, 3)/Sun.GM())
	if !floats.EqualWithinAbs(cost.FlightTime.Seconds(), want, 1) {
		t.Fatalf("flight time = %s", cost.FlightTime)
	}
}

func TestInvalidPropulsionType(t *testing.T) {
	res := InterceptResult{Target: syntheticState(0, 2*AU, 0, 0, 0)}
	var invalid InvalidPropulsionTypeError
	if _, err := res.CostFor("warp"); !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidPropulsionTypeError", err)
	}
	if _, err := PropulsionTypeFromString("antimatter"); !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidPropulsionTypeError", err)
	}
	if _, err := PropulsionTypeFromString("ion"); err != nil {
		t.Fatalf("ion rejected: %v", err)
	}
}

func TestSuccessScoreTiers(t *testing.T) {
	threshold := 0.01 * AU
	cases := []struct {
		miss float64
		want float64
	}{
		{threshold / 100, 0.95},
		{threshold / 10, 0.95},
		{threshold / 2, 0.75},
		{threshold, 0.75},
		{threshold * 3, 0.30},
	}
	for _, c := range cases {
		if got := successScore(c.miss, threshold); got != c.want {
			t.Fatalf("score(%f km) = %f, want %f", c.miss, got, c.want)
		}
	}
}
