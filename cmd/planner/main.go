// planner reads an intercept scenario from a TOML file, scans the launch
// windows and prints the report. Example scenario:
//
//	[target]
//	name = "433"        # resolved through the catalog chain, or:
//	# sma = 1.458       # AU; inline elements instead of a name
//	# ecc = 0.2227
//	# inc = 10.83       # degrees
//	# RAAN = 304.3
//	# argPeri = 178.9
//	# mAnomaly = 310.5
//	# epoch = 2457754.5 # JD, or an RFC 3339 date
//
//	[interceptor]
//	sma = 1.0
//	propulsion = "chemical"
//
//	[scan]
//	start = 2460000.5
//	end = 2460400.5
//	step = "24h"
//	maxDuration = "2160h"
//	stride = "720h"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"

	"github.com/AbhishreeBh0208/iris"
	"github.com/AbhishreeBh0208/iris/catalog"
)

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "planner scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "print every evaluated candidate, not just the feasible ones")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	startDT := confReadJDEorTime("scan.start")
	endDT := confReadJDEorTime("scan.end")
	step := confReadDuration("scan.step", 24*time.Hour)
	maxDuration := confReadDuration("scan.maxDuration", 90*24*time.Hour)
	stride := confReadDuration("scan.stride", 0)

	prop, err := iris.PropulsionTypeFromString(viper.GetString("interceptor.propulsion"))
	if err != nil {
		log.Fatalf("interceptor: %s", err)
	}
	departure, err := confReadElements("interceptor", startDT)
	if err != nil {
		log.Fatalf("interceptor: %s", err)
	}

	target, err := resolveTarget(startDT, endDT, step)
	if err != nil {
		log.Fatalf("target: %s", err)
	}
	log.Printf("target trajectory: %d states over %s", len(target), endDT.Sub(startDT))

	windows, err := iris.ScanLaunchWindows(context.Background(), iris.WindowRequest{
		Target:      target,
		Departure:   departure,
		MaxDuration: maxDuration,
		Stride:      stride,
		Step:        step,
		Propulsion:  prop,
	})
	if err != nil {
		log.Fatalf("scan failed: %s", err)
	}

	feasible := 0
	for _, win := range windows {
		if !win.Feasible && !verbose {
			continue
		}
		marker := " "
		if win.Feasible {
			marker = "*"
			feasible++
		}
		fmt.Printf("%s %s -> %s miss=%.5f AU %s\n", marker,
			win.Departure.Format("2006-01-02"), win.Intercept.Format("2006-01-02"),
			win.Miss/iris.AU, win.Cost)
	}
	fmt.Printf("%d feasible of %d evaluated\n", feasible, len(windows))
	if feasible == 0 {
		os.Exit(1)
	}
}

// resolveTarget builds the target trajectory either from the catalog chain
// (target.name) or from inline elements.
func resolveTarget(start, end time.Time, step time.Duration) (iris.Trajectory, error) {
	if name := viper.GetString("target.name"); name != "" {
		coordinator := catalog.NewCoordinator(nil,
			catalog.NewHorizonsClient("", nil),
			catalog.NewMPCClient("", nil),
		)
		report, err := coordinator.ObjectTrajectory(context.Background(), name, start, end, step)
		if err != nil {
			return nil, err
		}
		log.Printf("resolved %q via %s", name, report.SourcesUsed[0])
		return report.Trajectory, nil
	}
	elements, err := confReadElements("target", start)
	if err != nil {
		return nil, err
	}
	return elements.Propagate(start, end, step)
}

// confReadElements reads a [section] of classical elements in AU and
// degrees. A missing epoch anchors the orbit at the scan start.
func confReadElements(section string, fallbackEpoch time.Time) (iris.OrbitalElements, error) {
	epoch := fallbackEpoch
	if viper.IsSet(section + ".epoch") {
		epoch = confReadJDEorTime(section + ".epoch")
	}
	return iris.NewElements(
		viper.GetFloat64(section+".sma"),
		viper.GetFloat64(section+".ecc"),
		viper.GetFloat64(section+".inc"),
		viper.GetFloat64(section+".RAAN"),
		viper.GetFloat64(section+".argPeri"),
		viper.GetFloat64(section+".mAnomaly"),
		epoch, iris.Sun)
}

func confReadJDEorTime(key string) (dt time.Time) {
	jde := viper.GetFloat64(key)
	if jde == 0 {
		dt = viper.GetTime(key)
	} else {
		dt = julian.JDToTime(jde)
	}
	return
}

func confReadDuration(key string, fallback time.Duration) time.Duration {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetDuration(key)
}
