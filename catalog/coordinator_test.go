package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AbhishreeBh0208/iris"
)

type fakeProvider struct {
	name string
	caps []Capability
	traj iris.Trajectory
	objs []Object
	err  error

	trajectoryCalls int
}

func (f *fakeProvider) Name() string               { return f.name }
func (f *fakeProvider) Capabilities() []Capability { return f.caps }

func (f *fakeProvider) Trajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (iris.Trajectory, error) {
	f.trajectoryCalls++
	return f.traj, f.err
}

func (f *fakeProvider) Search(ctx context.Context, query string) ([]Object, error) {
	return f.objs, f.err
}

func oneState() iris.Trajectory {
	return iris.Trajectory{{
		Epoch: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		R:     []float64{iris.AU, 0, 0},
		V:     []float64{0, 30, 0},
		Frame: iris.FrameHeliocentricEcliptic,
	}}
}

func TestCoordinatorFallbackOrder(t *testing.T) {
	failing := &fakeProvider{name: "first", caps: []Capability{CapTrajectory}, err: errors.New("boom")}
	working := &fakeProvider{name: "second", caps: []Capability{CapTrajectory}, traj: oneState()}
	spare := &fakeProvider{name: "third", caps: []Capability{CapTrajectory}, traj: oneState()}

	c := NewCoordinator(nil, failing, working, spare)
	report, err := c.ObjectTrajectory(context.Background(), "433", time.Now(), time.Now().Add(time.Hour), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Trajectory) != 1 {
		t.Fatalf("trajectory has %d points", len(report.Trajectory))
	}
	if len(report.SourcesUsed) != 1 || report.SourcesUsed[0] != "second" {
		t.Fatalf("sources used: %v", report.SourcesUsed)
	}
	if len(report.SourcesTried) != 2 {
		t.Fatalf("sources tried: %v", report.SourcesTried)
	}
	if report.Errors["first"] != "boom" {
		t.Fatalf("errors: %v", report.Errors)
	}
	if spare.trajectoryCalls != 0 {
		t.Fatal("third provider consulted after a success")
	}
}

func TestCoordinatorSkipsIncapableProviders(t *testing.T) {
	searchOnly := &fakeProvider{name: "searcher", caps: []Capability{CapSearch}}
	working := &fakeProvider{name: "resolver", caps: []Capability{CapTrajectory}, traj: oneState()}

	c := NewCoordinator(nil, searchOnly, working)
	report, err := c.ObjectTrajectory(context.Background(), "1P", time.Now(), time.Now().Add(time.Hour), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if searchOnly.trajectoryCalls != 0 {
		t.Fatal("search-only provider asked for a trajectory")
	}
	if len(report.SourcesTried) != 1 || report.SourcesTried[0] != "resolver" {
		t.Fatalf("sources tried: %v", report.SourcesTried)
	}
}

func TestCoordinatorAllSourcesFailed(t *testing.T) {
	a := &fakeProvider{name: "a", caps: []Capability{CapTrajectory}, err: errors.New("down")}
	b := &fakeProvider{name: "b", caps: []Capability{CapTrajectory}, err: errors.New("also down")}

	c := NewCoordinator(nil, a, b)
	report, err := c.ObjectTrajectory(context.Background(), "999", time.Now(), time.Now().Add(time.Hour), time.Hour)
	var allFailed AllSourcesFailedError
	if !errors.As(err, &allFailed) {
		t.Fatalf("got %v, want AllSourcesFailedError", err)
	}
	if len(report.SourcesTried) != 2 || len(report.Errors) != 2 {
		t.Fatalf("report: %+v", report)
	}
	if len(report.SourcesUsed) != 0 {
		t.Fatal("sources used non-empty on total failure")
	}
}

func TestCoordinatorSearchFanOut(t *testing.T) {
	a := &fakeProvider{name: "a", caps: []Capability{CapSearch}, objs: []Object{{ID: "1", Source: "a"}}}
	broken := &fakeProvider{name: "broken", caps: []Capability{CapSearch}, err: errors.New("down")}
	b := &fakeProvider{name: "b", caps: []Capability{CapSearch, CapTrajectory}, objs: []Object{{ID: "2", Source: "b"}}}

	c := NewCoordinator(nil, a, broken, b)
	results := c.Search(context.Background(), "eros")
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].ID != "1" || results[1].ID != "2" {
		t.Fatalf("results out of chain order: %v", results)
	}
}
