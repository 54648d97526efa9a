package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/AbhishreeBh0208/iris"
)

const defaultHorizonsURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

// HorizonsClient fetches heliocentric state vector tables from the JPL
// Horizons API. Payload units are AU and AU/day; conversion to engine units
// happens at parse time.
type HorizonsClient struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewHorizonsClient creates a client for the given API URL (empty for the
// public endpoint).
func NewHorizonsClient(baseURL string, logger log.Logger) *HorizonsClient {
	if baseURL == "" {
		baseURL = defaultHorizonsURL
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &HorizonsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Name implements Provider.
func (h *HorizonsClient) Name() string { return "nasa_horizons" }

// Capabilities implements Provider. Horizons resolves ephemerides directly;
// it is not a search service.
func (h *HorizonsClient) Capabilities() []Capability {
	return []Capability{CapTrajectory}
}

// Search implements Provider.
func (h *HorizonsClient) Search(ctx context.Context, query string) ([]Object, error) {
	return nil, ErrUnsupported
}

// Trajectory implements Provider. It requests a Sun-centered ecliptic
// vector table over the grid and parses it into a trajectory.
func (h *HorizonsClient) Trajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (iris.Trajectory, error) {
	stepDays := int(step.Hours() / 24)
	if stepDays < 1 {
		stepDays = 1
	}
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%s'", id))
	params.Set("EPHEM_TYPE", "VECTORS")
	params.Set("CENTER", "'500@10'") // heliocenter
	params.Set("REF_PLANE", "ECLIPTIC")
	params.Set("OUT_UNITS", "'AU-D'")
	params.Set("VEC_TABLE", "'2'")
	params.Set("CSV_FORMAT", "'YES'")
	params.Set("START_TIME", fmt.Sprintf("'%s'", start.UTC().Format("2006-01-02")))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", end.UTC().Format("2006-01-02")))
	params.Set("STEP_SIZE", fmt.Sprintf("'%dd'", stepDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching ephemeris: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, h.baseURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var payload struct {
		Result string `json:"result"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("horizons: %s", payload.Error)
	}
	return parseVectorTable(payload.Result)
}

// parseVectorTable extracts the CSV block between the $$SOE and $$EOE
// markers of a Horizons vector table. With VEC_TABLE=2 each line is
// JDTDB, calendar string, X, Y, Z, VX, VY, VZ, with positions in AU and
// velocities in AU/day.
func parseVectorTable(result string) (iris.Trajectory, error) {
	startIdx := strings.Index(result, "$$SOE")
	endIdx := strings.Index(result, "$$EOE")
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		return nil, fmt.Errorf("horizons: no ephemeris block in result")
	}
	var traj iris.Trajectory
	for _, line := range strings.Split(result[startIdx+len("$$SOE"):endIdx], "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ","))
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 8 {
			return nil, fmt.Errorf("horizons: malformed vector line %q", line)
		}
		jd, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("horizons: bad JDTDB in %q: %w", line, err)
		}
		var vals [6]float64
		for k := 0; k < 6; k++ {
			vals[k], err = strconv.ParseFloat(strings.TrimSpace(fields[k+2]), 64)
			if err != nil {
				return nil, fmt.Errorf("horizons: bad component in %q: %w", line, err)
			}
		}
		traj = append(traj, iris.StateVector{
			Epoch: iris.TimeFromJD(jd),
			R:     []float64{vals[0] * iris.AU, vals[1] * iris.AU, vals[2] * iris.AU},
			V: []float64{
				vals[3] * iris.AU / iris.SecondsPerDay,
				vals[4] * iris.AU / iris.SecondsPerDay,
				vals[5] * iris.AU / iris.SecondsPerDay,
			},
			Frame: iris.FrameHeliocentricEcliptic,
		})
	}
	if len(traj) == 0 {
		return nil, fmt.Errorf("horizons: empty ephemeris block")
	}
	return traj, nil
}
