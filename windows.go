package iris

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// LaunchWindow is one evaluated (departure, intercept) candidate.
type LaunchWindow struct {
	Departure time.Time
	Intercept time.Time
	Feasible  bool
	Miss      float64 // km
	Cost      CostEstimate
}

// WindowRequest holds the parameters of a launch window scan.
type WindowRequest struct {
	// Target is the precomputed target trajectory the scan runs against.
	Target Trajectory
	// Departure is the interceptor's departure orbit; its epoch is
	// re-anchored to each candidate departure time.
	Departure OrbitalElements
	// MaxDuration caps the mission length for every candidate.
	MaxDuration time.Duration
	// Stride spaces the candidate departures. Zero means the configured
	// default (30 days).
	Stride time.Duration
	// Step is the interceptor propagation step. Zero means 24 hours.
	Step time.Duration
	// Propulsion selects the Isp used for every cost estimate.
	Propulsion PropulsionType
}

// ScanLaunchWindows evaluates candidate departures at a fixed stride across
// the target trajectory and reports each candidate with its feasibility and
// cost. Candidates are independent full propagate/intercept/cost runs, so
// they execute concurrently, bounded by the CPU count; results are
// re-assembled in departure order. Any candidate failure aborts the scan:
// errors are terminal for the call that triggered them, retry policy belongs
// to the caller.
func ScanLaunchWindows(ctx context.Context, req WindowRequest) ([]LaunchWindow, error) {
	if len(req.Target) == 0 {
		return nil, InsufficientDataError{Trajectory: "target"}
	}
	stride := req.Stride
	if stride <= 0 {
		stride = engineConfig().WindowStride
	}
	step := req.Step
	if step <= 0 {
		step = 24 * time.Hour
	}

	start, end := req.Target.Span()
	var departures []time.Time
	for dt := start; !dt.After(end.Add(-req.MaxDuration)); dt = dt.Add(stride) {
		departures = append(departures, dt)
	}
	if len(departures) == 0 {
		// The target coverage is shorter than a single mission.
		return nil, nil
	}

	windows := make([]LaunchWindow, len(departures))
	errs := make([]error, len(departures))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for idx, departure := range departures {
		wg.Add(1)
		go func(idx int, departure time.Time) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			interceptEnd := departure.Add(req.MaxDuration)
			icp, err := req.Departure.AtEpoch(departure).Propagate(departure, interceptEnd, step)
			if err != nil {
				errs[idx] = err
				return
			}
			res, err := Evaluate(req.Target.Slice(departure, interceptEnd), icp, req.Propulsion)
			if err != nil {
				errs[idx] = err
				return
			}
			windows[idx] = LaunchWindow{
				Departure: departure,
				Intercept: res.Interceptor.Epoch,
				Feasible:  res.Feasible,
				Miss:      res.MissDistance,
				Cost:      res.Cost,
			}
		}(idx, departure)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return windows, nil
}
