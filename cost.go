package iris

import (
	"fmt"
	"math"
	"time"
)

// g0 is standard gravity in km/s², used to turn a specific impulse into an
// exhaust velocity.
const g0 = 9.81e-3

// PropulsionType tags the propulsion system assumed by the cost estimator.
// The tag selects an Isp from the configured table; an unknown tag is an
// error, never a silent default.
type PropulsionType string

const (
	// PropulsionChemical is a bipropellant chemical stage (Isp ~300 s).
	PropulsionChemical PropulsionType = "chemical"
	// PropulsionIon is an electric thruster (Isp ~3000 s).
	PropulsionIon PropulsionType = "ion"
)

// PropulsionTypeFromString validates a propulsion tag against the Isp table.
func PropulsionTypeFromString(tag string) (PropulsionType, error) {
	prop := PropulsionType(tag)
	if _, ok := engineConfig().Isp[prop]; !ok {
		return "", InvalidPropulsionTypeError{Tag: prop}
	}
	return prop, nil
}

// CostEstimate is the propulsive cost of an intercept. ΔV in km/s,
// FuelFraction in [0, 1), SuccessScore in [0, 1].
type CostEstimate struct {
	ΔV           float64
	FlightTime   time.Duration
	FuelFraction float64
	SuccessScore float64
}

func (c CostEstimate) String() string {
	return fmt.Sprintf("Δv=%.3f km/s tof=%s fuel=%.1f%% score=%.2f", c.ΔV, c.FlightTime, c.FuelFraction*100, c.SuccessScore)
}

// Hohmann computes the two-burn transfer between circular orbits of radii rI
// and rF (km) around the given body. It returns the transfer orbit velocity
// at departure, at arrival, and the time of flight (half the transfer orbit
// period).
func Hohmann(rI, rF float64, body CelestialObject) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * body.GM() / rI) - (body.GM() / aTransfer))
	vArrival = math.Sqrt((2 * body.GM() / rF) - (body.GM() / aTransfer))
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/body.GM())) * time.Second
	return
}

// CostFor derives the maneuver cost of this intercept for the given
// propulsion type. The model is a Hohmann approximation between the
// configured departure radius (Earth-like, 1 AU by default) and the target
// radius at closest approach, with a fixed margin factor standing in for the
// arrival burn and correction maneuvers. This is a documented approximation,
// not a Lambert solve; the margin factor is an empirical constant carried
// over as configuration.
func (res InterceptResult) CostFor(prop PropulsionType) (CostEstimate, error) {
	cfg := engineConfig()
	isp, ok := cfg.Isp[prop]
	if !ok {
		return CostEstimate{}, InvalidPropulsionTypeError{Tag: prop}
	}

	rI := cfg.DepartureRadiusAU * AU
	rF := res.Target.RNorm()
	vCircular := math.Sqrt(Sun.GM() / rI)
	vTransfer, _, tof := Hohmann(rI, rF, Sun)

	Δv := math.Abs(vTransfer-vCircular) * cfg.MarginFactor

	// Tsiolkovsky: Δv = ve·ln(m0/mf).
	ve := isp * g0
	massRatio := math.Exp(Δv / ve)
	fuelFraction := (massRatio - 1) / massRatio

	return CostEstimate{
		ΔV:           Δv,
		FlightTime:   tof,
		FuelFraction: fuelFraction,
		SuccessScore: successScore(res.MissDistance, cfg.FeasibilityThreshold*AU),
	}, nil
}

// successScore maps a miss distance onto a qualitative likelihood tier. The
// tiers tighten with the feasibility threshold: a miss an order of magnitude
// inside the threshold scores 0.95, a miss within it 0.75, anything wider
// 0.30.
func successScore(missKm, thresholdKm float64) float64 {
	switch {
	case missKm <= thresholdKm/10:
		return 0.95
	case missKm <= thresholdKm:
		return 0.75
	default:
		return 0.30
	}
}
