package iris

// InterceptResult is the geometry of the closest approach between a target
// and an interceptor trajectory, plus the derived maneuver cost estimate.
// Distances are km, speeds km/s.
type InterceptResult struct {
	Target        StateVector
	Interceptor   StateVector
	MissDistance  float64
	RelativeSpeed float64
	Feasible      bool
	Cost          CostEstimate
}

// MissDistanceAU returns the miss distance in the boundary unit.
func (res InterceptResult) MissDistanceAU() float64 {
	return res.MissDistance / AU
}

// FindClosestApproach scans two trajectories exhaustively for the pair of
// samples with the globally minimal separation. With the bounded sample
// counts this engine works on (hundreds of points) the O(n·m) scan is
// cheaper than any spatial index worth maintaining. On equal distances the
// earliest interceptor sample wins, which the strict < comparison in scan
// order guarantees. The cost record of the result is left zeroed; see
// Evaluate.
func FindClosestApproach(target, interceptor Trajectory) (InterceptResult, error) {
	if len(target) == 0 {
		return InterceptResult{}, InsufficientDataError{Trajectory: "target"}
	}
	if len(interceptor) == 0 {
		return InterceptResult{}, InsufficientDataError{Trajectory: "interceptor"}
	}
	var best InterceptResult
	bestDist := -1.0
	for _, icp := range interceptor {
		for _, tgt := range target {
			d := Norm(Sub(icp.R, tgt.R))
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best.Target = tgt
				best.Interceptor = icp
			}
		}
	}
	best.MissDistance = bestDist
	best.RelativeSpeed = Norm(Sub(best.Interceptor.V, best.Target.V))
	best.Feasible = bestDist <= engineConfig().FeasibilityThreshold*AU
	return best, nil
}

// Evaluate runs the closest approach search and fills in the cost estimate
// for the given propulsion type.
func Evaluate(target, interceptor Trajectory, prop PropulsionType) (InterceptResult, error) {
	res, err := FindClosestApproach(target, interceptor)
	if err != nil {
		return InterceptResult{}, err
	}
	cost, err := res.CostFor(prop)
	if err != nil {
		return InterceptResult{}, err
	}
	res.Cost = cost
	return res, nil
}
