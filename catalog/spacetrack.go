package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/AbhishreeBh0208/iris"
)

const defaultSpaceTrackURL = "https://www.space-track.org"

// SpaceTrackClient resolves Earth satellites: catalog search against satcat
// and trajectories by SGP4-propagating the freshest GP element set. The
// resulting states are geocentric TEME, tagged as such; mixing them with
// heliocentric trajectories is the caller's mistake to avoid.
type SpaceTrackClient struct {
	baseURL    string
	identity   string
	password   string
	httpClient *http.Client
	logger     log.Logger

	mu            sync.Mutex
	authenticated bool
}

// NewSpaceTrackClient creates a client with the given credentials. The
// session cookie is established lazily on first use.
func NewSpaceTrackClient(baseURL, identity, password string, logger log.Logger) *SpaceTrackClient {
	if baseURL == "" {
		baseURL = defaultSpaceTrackURL
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	jar, _ := cookiejar.New(nil)
	return &SpaceTrackClient{
		baseURL:  baseURL,
		identity: identity,
		password: password,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
		logger: logger,
	}
}

// Name implements Provider.
func (s *SpaceTrackClient) Name() string { return "space_track" }

// Capabilities implements Provider.
func (s *SpaceTrackClient) Capabilities() []Capability {
	return []Capability{CapTrajectory, CapSearch}
}

func (s *SpaceTrackClient) authenticate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated {
		return nil
	}
	form := url.Values{}
	form.Set("identity", s.identity)
	form.Set("password", s.password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/ajaxauth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("space-track login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("space-track login rejected with status %d", resp.StatusCode)
	}
	s.authenticated = true
	return nil
}

// gpRecord is the subset of a Space-Track GP record this client consumes.
type gpRecord struct {
	ObjectName string `json:"OBJECT_NAME"`
	NoradCatID string `json:"NORAD_CAT_ID"`
	TLELine1   string `json:"TLE_LINE1"`
	TLELine2   string `json:"TLE_LINE2"`
}

// Trajectory implements Provider. The id must be a NORAD catalog number.
func (s *SpaceTrackClient) Trajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (iris.Trajectory, error) {
	noradID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("space-track: %q is not a NORAD catalog number", id)
	}
	if err := s.authenticate(ctx); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/basicspacedata/query/class/gp/NORAD_CAT_ID/%d/orderby/EPOCH%%20desc/limit/1/format/json", noradID)
	var records []gpRecord
	if err := s.getJSON(ctx, path, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 || records[0].TLELine1 == "" || records[0].TLELine2 == "" {
		return nil, fmt.Errorf("space-track: no GP element set for %d", noradID)
	}

	sat := satellite.TLEToSat(records[0].TLELine1, records[0].TLELine2, satellite.GravityWGS84)
	var traj iris.Trajectory
	for dt := start; !dt.After(end); dt = dt.Add(step) {
		// The SGP4 entry point takes whole seconds, so round rather than
		// truncate sub-second grid instants.
		u := dt.UTC().Round(time.Second)
		pos, vel := satellite.Propagate(sat, u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
		traj = append(traj, iris.StateVector{
			Epoch: dt,
			R:     []float64{pos.X, pos.Y, pos.Z},
			V:     []float64{vel.X, vel.Y, vel.Z},
			Frame: iris.FrameGeocentricTEME,
		})
	}
	return traj, nil
}

// Search implements Provider: a satcat substring query on the object name.
func (s *SpaceTrackClient) Search(ctx context.Context, query string) ([]Object, error) {
	if err := s.authenticate(ctx); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/basicspacedata/query/class/satcat/OBJECT_NAME/~~%s/limit/50/format/json", url.PathEscape(query))
	var records []struct {
		ObjectName string `json:"OBJECT_NAME"`
		NoradCatID string `json:"NORAD_CAT_ID"`
		ObjectType string `json:"OBJECT_TYPE"`
		ObjectID   string `json:"OBJECT_ID"`
	}
	if err := s.getJSON(ctx, path, &records); err != nil {
		return nil, err
	}
	objects := make([]Object, 0, len(records))
	for _, r := range records {
		objects = append(objects, Object{
			ID:          r.NoradCatID,
			Name:        r.ObjectName,
			Kind:        strings.ToLower(r.ObjectType),
			Designation: r.ObjectID,
			Source:      s.Name(),
		})
	}
	return objects, nil
}

func (s *SpaceTrackClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("querying space-track: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		// Session expired, force a fresh login on the next call.
		s.mu.Lock()
		s.authenticated = false
		s.mu.Unlock()
		return fmt.Errorf("space-track session expired")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from space-track", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding space-track response: %w", err)
	}
	return nil
}
