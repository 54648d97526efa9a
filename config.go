package iris

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	cfgOnce sync.Once
	config  _irisconfig
)

// _irisconfig is a "hidden" struct, just use `engineConfig`.
type _irisconfig struct {
	// MarginFactor multiplies the departure Δv to cover the arrival burn
	// and correction maneuvers. Empirical constant, no physical derivation.
	MarginFactor float64
	// FeasibilityThreshold is the miss distance in AU below which an
	// intercept is reported feasible.
	FeasibilityThreshold float64
	// DepartureRadiusAU is the circular departure orbit radius of the
	// Hohmann approximation.
	DepartureRadiusAU float64
	// Isp maps a propulsion tag to its specific impulse in seconds.
	Isp map[PropulsionType]float64
	// WindowStride is the spacing between candidate departures scanned by
	// the launch window scanner.
	WindowStride time.Duration
}

// engineConfig returns the engine constants, loading them exactly once. All
// values have compiled-in defaults; a conf.toml in the directory named by the
// IRIS_CONFIG environment variable overrides them. The load is guarded by a
// sync.Once since the window scanner calls this from many goroutines; the
// returned struct and its Isp map are never mutated after the load.
func engineConfig() _irisconfig {
	cfgOnce.Do(func() {
		v := viper.New()
		v.SetDefault("cost.margin_factor", 1.5)
		v.SetDefault("cost.feasibility_threshold_au", 0.01)
		v.SetDefault("cost.departure_radius_au", 1.0)
		v.SetDefault("cost.isp.chemical", 300.0)
		v.SetDefault("cost.isp.ion", 3000.0)
		v.SetDefault("windows.stride_days", 30)

		if confPath := os.Getenv("IRIS_CONFIG"); confPath != "" {
			v.SetConfigName("conf")
			v.AddConfigPath(confPath)
			if err := v.ReadInConfig(); err != nil {
				panic(fmt.Errorf("%s/conf.toml: %s", confPath, err))
			}
		}

		isp := make(map[PropulsionType]float64)
		for tag := range v.GetStringMap("cost.isp") {
			isp[PropulsionType(tag)] = v.GetFloat64("cost.isp." + tag)
		}

		config = _irisconfig{
			MarginFactor:         v.GetFloat64("cost.margin_factor"),
			FeasibilityThreshold: v.GetFloat64("cost.feasibility_threshold_au"),
			DepartureRadiusAU:    v.GetFloat64("cost.departure_radius_au"),
			Isp:                  isp,
			WindowStride:         time.Duration(v.GetInt("windows.stride_days")) * 24 * time.Hour,
		}
	})
	return config
}
