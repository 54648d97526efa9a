// Package catalog acquires orbital data (ephemerides, orbital elements, TLEs)
// from external astronomical services and resolves it into the engine's
// types. The engine itself never fetches anything: everything network-bound
// lives here, behind an ordered fallback chain of capability-tagged
// providers.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/AbhishreeBh0208/iris"
)

// Capability tags what a provider can answer. The coordinator skips
// providers which do not carry the capability a request needs.
type Capability string

const (
	// CapTrajectory means the provider can resolve a trajectory directly
	// (resolved ephemeris or TLE propagation).
	CapTrajectory Capability = "trajectory"
	// CapElements means the provider returns classical orbital elements.
	CapElements Capability = "elements"
	// CapSearch means the provider can search its catalog by name.
	CapSearch Capability = "search"
)

// ErrUnsupported is returned by a provider asked for a capability it does
// not carry.
var ErrUnsupported = errors.New("capability not supported by this provider")

// Object is a catalog entry returned by a search.
type Object struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"` // asteroid, comet, satellite...
	Designation string  `json:"designation,omitempty"`
	Magnitude   float64 `json:"magnitude,omitempty"`
	Source      string  `json:"source"`
}

// Provider is one external data source. Implementations must be safe for
// concurrent use; all methods honor the context for cancellation.
type Provider interface {
	// Name is the stable tag used in SourcesTried/SourcesUsed reports.
	Name() string
	Capabilities() []Capability
	// Trajectory resolves the object's trajectory over the grid, already
	// converted to engine units (km, km/s) and tagged with its frame.
	Trajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (iris.Trajectory, error)
	// Search looks the query up in the provider's catalog.
	Search(ctx context.Context, query string) ([]Object, error)
}

func hasCapability(p Provider, c Capability) bool {
	for _, cap := range p.Capabilities() {
		if cap == c {
			return true
		}
	}
	return false
}
