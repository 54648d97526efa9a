package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/AbhishreeBh0208/iris"
)

const defaultMPCBaseURL = "https://www.minorplanetcenter.net/web_service"

// MPCClient queries the Minor Planet Center web service for asteroid and
// comet orbital elements. It resolves trajectories by handing the elements
// to the engine's propagator, which is the mpc -> propagator leg of the
// original fallback chain.
type MPCClient struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewMPCClient creates a client for the given service URL (empty for the
// public endpoint).
func NewMPCClient(baseURL string, logger log.Logger) *MPCClient {
	if baseURL == "" {
		baseURL = defaultMPCBaseURL
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &MPCClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Name implements Provider.
func (m *MPCClient) Name() string { return "mpc" }

// Capabilities implements Provider.
func (m *MPCClient) Capabilities() []Capability {
	return []Capability{CapTrajectory, CapElements, CapSearch}
}

// mpcElements is the wire shape of an MPC orbital_elements record. Angles
// are degrees, the semi major axis is AU, the epoch a Julian Date.
type mpcElements struct {
	A     float64 `json:"a"`
	E     float64 `json:"e"`
	I     float64 `json:"i"`
	Om    float64 `json:"Om"`
	W     float64 `json:"w"`
	M     float64 `json:"M"`
	Epoch float64 `json:"epoch"`
}

// Elements fetches and validates the orbital elements of an object.
func (m *MPCClient) Elements(ctx context.Context, id string) (iris.OrbitalElements, error) {
	params := url.Values{}
	params.Set("designation", id)
	params.Set("format", "json")

	var records []mpcElements
	if err := m.getJSON(ctx, "/orbital_elements", params, &records); err != nil {
		return iris.OrbitalElements{}, err
	}
	if len(records) == 0 {
		return iris.OrbitalElements{}, fmt.Errorf("mpc: no elements for %q", id)
	}
	rec := records[0]
	return iris.NewElements(rec.A, rec.E, rec.I, rec.Om, rec.W, rec.M, iris.TimeFromJD(rec.Epoch), iris.Sun)
}

// Trajectory implements Provider: elements from MPC, states from the
// engine's Keplerian propagator.
func (m *MPCClient) Trajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (iris.Trajectory, error) {
	elements, err := m.Elements(ctx, id)
	if err != nil {
		return nil, err
	}
	return elements.Propagate(start, end, step)
}

// Search implements Provider.
func (m *MPCClient) Search(ctx context.Context, query string) ([]Object, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "50")
	params.Set("format", "json")

	var payload struct {
		Objects []struct {
			Name              string  `json:"name"`
			Designation       string  `json:"designation"`
			ObjectType        string  `json:"object_type"`
			AbsoluteMagnitude float64 `json:"absolute_magnitude"`
		} `json:"objects"`
	}
	if err := m.getJSON(ctx, "/search_objects", params, &payload); err != nil {
		return nil, err
	}
	objects := make([]Object, 0, len(payload.Objects))
	for _, o := range payload.Objects {
		id := o.Designation
		if id == "" {
			id = o.Name
		}
		name := o.Name
		if name == "" {
			name = o.Designation
		}
		objects = append(objects, Object{
			ID:          id,
			Name:        name,
			Kind:        o.ObjectType,
			Designation: o.Designation,
			Magnitude:   o.AbsoluteMagnitude,
			Source:      m.Name(),
		})
	}
	return objects, nil
}

func (m *MPCClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("querying mpc: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, m.baseURL+path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding mpc response: %w", err)
	}
	return nil
}
