package iris

import (
	"sync"
	"testing"

	"github.com/gonum/floats"
)

func TestEngineConfigDefaults(t *testing.T) {
	cfg := engineConfig()
	if !floats.EqualWithinAbs(cfg.MarginFactor, 1.5, 1e-12) {
		t.Fatalf("margin factor: %f", cfg.MarginFactor)
	}
	if !floats.EqualWithinAbs(cfg.FeasibilityThreshold, 0.01, 1e-12) {
		t.Fatalf("feasibility threshold: %f", cfg.FeasibilityThreshold)
	}
	if cfg.Isp[PropulsionChemical] != 300 || cfg.Isp[PropulsionIon] != 3000 {
		t.Fatalf("isp table: %v", cfg.Isp)
	}
}

// The window scanner hits the config from many goroutines at once, so the
// first load must be safe when it happens under contention. Run under the
// race detector.
func TestEngineConfigConcurrentFirstLoad(t *testing.T) {
	target := Trajectory{syntheticState(0, AU, 0, 0, 30)}
	interceptor := Trajectory{syntheticState(0, AU, 0.004*AU, 0, 30)}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := Evaluate(target, interceptor, PropulsionChemical)
			if err != nil {
				t.Error(err)
				return
			}
			if !res.Feasible {
				t.Errorf("miss %f AU reported infeasible", res.MissDistanceAU())
			}
		}()
	}
	wg.Wait()
}
