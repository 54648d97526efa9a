package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/AbhishreeBh0208/iris"
)

// TrajectoryReport is the outcome of a multi-source trajectory resolution:
// the trajectory itself on success, plus which sources were consulted and
// how each failed one failed. The per-source errors are strings so the
// report serializes cleanly for the serving layer.
type TrajectoryReport struct {
	Trajectory   iris.Trajectory   `json:"-"`
	SourcesUsed  []string          `json:"sources_used"`
	SourcesTried []string          `json:"sources_tried"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// AllSourcesFailedError is returned when every capable provider in the chain
// failed to resolve an object.
type AllSourcesFailedError struct {
	ID     string
	Report *TrajectoryReport
}

func (e AllSourcesFailedError) Error() string {
	return fmt.Sprintf("all %d sources failed to resolve %q", len(e.Report.SourcesTried), e.ID)
}

// Coordinator tries providers in the order they were registered. There is no
// reconciliation between sources: the first one to answer wins, the rest are
// never consulted.
type Coordinator struct {
	providers []Provider
	logger    log.Logger
}

// NewCoordinator builds a coordinator over the given provider chain.
func NewCoordinator(logger log.Logger, providers ...Provider) *Coordinator {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Coordinator{providers: providers, logger: logger}
}

// ProviderNames returns the registered chain, in fallback order.
func (c *Coordinator) ProviderNames() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// ObjectTrajectory resolves a trajectory for the object through the fallback
// chain. The returned report is never nil: on total failure it carries every
// source tried and its error, wrapped in AllSourcesFailedError.
func (c *Coordinator) ObjectTrajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (*TrajectoryReport, error) {
	report := &TrajectoryReport{Errors: make(map[string]string)}
	for _, p := range c.providers {
		if !hasCapability(p, CapTrajectory) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.SourcesTried = append(report.SourcesTried, p.Name())
		traj, err := p.Trajectory(ctx, id, start, end, step)
		if err != nil {
			c.logger.Log("component", "catalog", "provider", p.Name(), "object", id, "err", err)
			report.Errors[p.Name()] = err.Error()
			continue
		}
		c.logger.Log("component", "catalog", "provider", p.Name(), "object", id, "points", len(traj))
		report.Trajectory = traj
		report.SourcesUsed = []string{p.Name()}
		return report, nil
	}
	return report, AllSourcesFailedError{ID: id, Report: report}
}

// Search fans the query out to every provider carrying the search
// capability and concatenates the results in chain order. Provider failures
// are logged and skipped: a search is best effort.
func (c *Coordinator) Search(ctx context.Context, query string) []Object {
	var results []Object
	for _, p := range c.providers {
		if !hasCapability(p, CapSearch) {
			continue
		}
		objects, err := p.Search(ctx, query)
		if err != nil {
			c.logger.Log("component", "catalog", "provider", p.Name(), "query", query, "err", err)
			continue
		}
		results = append(results, objects...)
	}
	return results
}
