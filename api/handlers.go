package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AbhishreeBh0208/iris"
	"github.com/AbhishreeBh0208/iris/catalog"
)

// elementsDTO is the wire form of an orbit: AU, degrees, and an epoch given
// either as RFC 3339 or as a Julian Date.
type elementsDTO struct {
	SemiMajorAxisAU float64 `json:"semi_major_axis_au"`
	Eccentricity    float64 `json:"eccentricity"`
	InclinationDeg  float64 `json:"inclination_deg"`
	RAANDeg         float64 `json:"raan_deg"`
	ArgPeriapsisDeg float64 `json:"arg_periapsis_deg"`
	MeanAnomalyDeg  float64 `json:"mean_anomaly_deg"`
	Epoch           string  `json:"epoch,omitempty"`
	EpochJD         float64 `json:"epoch_jd,omitempty"`
}

func (d elementsDTO) toElements() (iris.OrbitalElements, error) {
	epoch := time.Now().UTC()
	switch {
	case d.Epoch != "":
		var err error
		if epoch, err = parseTime(d.Epoch); err != nil {
			return iris.OrbitalElements{}, err
		}
	case d.EpochJD != 0:
		epoch = iris.TimeFromJD(d.EpochJD)
	}
	return iris.NewElements(d.SemiMajorAxisAU, d.Eccentricity, d.InclinationDeg,
		d.RAANDeg, d.ArgPeriapsisDeg, d.MeanAnomalyDeg, epoch, iris.Sun)
}

// stateDTO is the wire form of a state vector: AU and AU/day.
type stateDTO struct {
	Epoch         string     `json:"epoch"`
	PositionAU    [3]float64 `json:"position_au"`
	VelocityAUDay [3]float64 `json:"velocity_au_day"`
	Frame         string     `json:"frame"`
}

func toStateDTO(s iris.StateVector) stateDTO {
	dto := stateDTO{Epoch: s.Epoch.UTC().Format(time.RFC3339), Frame: s.Frame}
	for k := 0; k < 3; k++ {
		dto.PositionAU[k] = s.R[k] / iris.AU
		dto.VelocityAUDay[k] = s.V[k] * iris.SecondsPerDay / iris.AU
	}
	return dto
}

func toStateDTOs(traj iris.Trajectory) []stateDTO {
	states := make([]stateDTO, len(traj))
	for k, s := range traj {
		states[k] = toStateDTO(s)
	}
	return states
}

type costDTO struct {
	DeltaVKmS      float64 `json:"delta_v_km_s"`
	FlightTimeDays float64 `json:"flight_time_days"`
	FuelFraction   float64 `json:"fuel_fraction"`
	SuccessScore   float64 `json:"success_score"`
}

func toCostDTO(c iris.CostEstimate) costDTO {
	return costDTO{
		DeltaVKmS:      c.ΔV,
		FlightTimeDays: c.FlightTime.Hours() / 24,
		FuelFraction:   c.FuelFraction,
		SuccessScore:   c.SuccessScore,
	}
}

type windowDTO struct {
	Departure string  `json:"departure"`
	Intercept string  `json:"intercept"`
	Feasible  bool    `json:"feasible"`
	MissAU    float64 `json:"miss_au"`
	Cost      costDTO `json:"cost"`
}

// parseTime accepts RFC 3339 or a bare calendar date.
func parseTime(value string) (time.Time, error) {
	if dt, err := time.Parse(time.RFC3339, value); err == nil {
		return dt, nil
	}
	dt, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as RFC 3339 or YYYY-MM-DD", value)
	}
	return dt, nil
}

// writeError maps the engine's error taxonomy onto HTTP status codes. Caller
// mistakes (bad elements, unknown propulsion, empty trajectories) are 400s,
// an exhausted source chain is a 502, a diverged solve is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		invalidElements iris.InvalidElementsError
		invalidProp     iris.InvalidPropulsionTypeError
		insufficient    iris.InsufficientDataError
		divergence      iris.NumericDivergenceError
		allFailed       catalog.AllSourcesFailedError
	)
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &invalidElements), errors.As(err, &invalidProp), errors.As(err, &insufficient):
		code = http.StatusBadRequest
	case errors.As(err, &allFailed):
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":  err.Error(),
			"report": allFailed.Report,
		})
		return
	case errors.As(err, &divergence):
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func badRequest(w http.ResponseWriter, format string, args ...interface{}) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"sources":        s.source.ProviderNames(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		badRequest(w, "missing query parameter q")
		return
	}
	results := s.source.Search(r.Context(), query)
	if results == nil {
		results = []catalog.Object{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// trajectoryWindow reads the shared start/end/step_days query parameters.
// Defaults: now, now+90 days, 1 day.
func trajectoryWindow(r *http.Request) (start, end time.Time, step time.Duration, err error) {
	start = time.Now().UTC().Truncate(24 * time.Hour)
	end = start.AddDate(0, 0, 90)
	step = 24 * time.Hour
	if raw := r.URL.Query().Get("start"); raw != "" {
		if start, err = parseTime(raw); err != nil {
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if end, err = parseTime(raw); err != nil {
			return
		}
	}
	if raw := r.URL.Query().Get("step_days"); raw != "" {
		var days float64
		if _, err = fmt.Sscanf(raw, "%f", &days); err != nil || days <= 0 {
			err = fmt.Errorf("step_days must be a positive number, got %q", raw)
			return
		}
		step = time.Duration(days * 24 * float64(time.Hour))
	}
	if !end.After(start) {
		err = fmt.Errorf("end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	start, end, step, err := trajectoryWindow(r)
	if err != nil {
		badRequest(w, "%s", err)
		return
	}
	report, err := s.source.ObjectTrajectory(r.Context(), name, start, end, step)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"object": name,
		"report": report,
		"states": toStateDTOs(report.Trajectory),
	})
}

// handleObject resolves an object's state at the current instant.
func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	now := time.Now().UTC()
	report, err := s.source.ObjectTrajectory(r.Context(), name, now, now, 24*time.Hour)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(report.Trajectory) == 0 {
		s.writeError(w, iris.InsufficientDataError{Trajectory: name})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"object": name,
		"report": report,
		"state":  toStateDTO(report.Trajectory[0]),
	})
}

type simulateRequest struct {
	Elements elementsDTO `json:"elements"`
	Start    string      `json:"start"`
	End      string      `json:"end"`
	StepDays float64     `json:"step_days"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "decoding request body: %s", err)
		return
	}
	elements, err := req.Elements.toElements()
	if err != nil {
		s.writeError(w, err)
		return
	}
	start, end := elements.Epoch, elements.Epoch.Add(elements.Period())
	if req.Start != "" {
		if start, err = parseTime(req.Start); err != nil {
			badRequest(w, "%s", err)
			return
		}
	}
	if req.End != "" {
		if end, err = parseTime(req.End); err != nil {
			badRequest(w, "%s", err)
			return
		}
	}
	if !end.After(start) {
		badRequest(w, "end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
		return
	}
	step := 24 * time.Hour
	if req.StepDays > 0 {
		step = time.Duration(req.StepDays * 24 * float64(time.Hour))
	}
	traj, err := elements.Propagate(start, end, step)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"elements": req.Elements,
		"states":   toStateDTOs(traj),
	})
}

type windowsRequest struct {
	// Exactly one of TargetName and Target selects the target: a catalog
	// lookup or inline elements.
	TargetName      string       `json:"target_name,omitempty"`
	Target          *elementsDTO `json:"target,omitempty"`
	Departure       elementsDTO  `json:"departure"`
	Start           string       `json:"start"`
	End             string       `json:"end"`
	StepDays        float64      `json:"step_days"`
	MaxDurationDays float64      `json:"max_duration_days"`
	StrideDays      float64      `json:"stride_days"`
	Propulsion      string       `json:"propulsion"`
}

func (s *Server) handleWindows(w http.ResponseWriter, r *http.Request) {
	var req windowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "decoding request body: %s", err)
		return
	}
	if (req.TargetName == "") == (req.Target == nil) {
		badRequest(w, "exactly one of target_name and target is required")
		return
	}
	if req.MaxDurationDays <= 0 {
		badRequest(w, "max_duration_days must be positive")
		return
	}
	prop, err := iris.PropulsionTypeFromString(req.Propulsion)
	if err != nil {
		s.writeError(w, err)
		return
	}
	departure, err := req.Departure.toElements()
	if err != nil {
		s.writeError(w, err)
		return
	}

	start, err := parseTime(req.Start)
	if err != nil {
		badRequest(w, "start: %s", err)
		return
	}
	end, err := parseTime(req.End)
	if err != nil {
		badRequest(w, "end: %s", err)
		return
	}
	if !end.After(start) {
		badRequest(w, "end %s is not after start %s", req.End, req.Start)
		return
	}
	step := 24 * time.Hour
	if req.StepDays > 0 {
		step = time.Duration(req.StepDays * 24 * float64(time.Hour))
	}

	var target iris.Trajectory
	if req.TargetName != "" {
		report, err := s.source.ObjectTrajectory(r.Context(), req.TargetName, start, end, step)
		if err != nil {
			s.writeError(w, err)
			return
		}
		target = report.Trajectory
	} else {
		elements, err := req.Target.toElements()
		if err != nil {
			s.writeError(w, err)
			return
		}
		if target, err = elements.Propagate(start, end, step); err != nil {
			s.writeError(w, err)
			return
		}
	}

	scan := iris.WindowRequest{
		Target:      target,
		Departure:   departure,
		MaxDuration: time.Duration(req.MaxDurationDays * 24 * float64(time.Hour)),
		Stride:      time.Duration(req.StrideDays * 24 * float64(time.Hour)),
		Step:        step,
		Propulsion:  prop,
	}
	windows, err := iris.ScanLaunchWindows(r.Context(), scan)
	if err != nil {
		s.writeError(w, err)
		return
	}

	dtos := make([]windowDTO, len(windows))
	feasible := 0
	for k, win := range windows {
		if win.Feasible {
			feasible++
		}
		dtos[k] = windowDTO{
			Departure: win.Departure.UTC().Format(time.RFC3339),
			Intercept: win.Intercept.UTC().Format(time.RFC3339),
			Feasible:  win.Feasible,
			MissAU:    win.Miss / iris.AU,
			Cost:      toCostDTO(win.Cost),
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluated": len(dtos),
		"feasible":  feasible,
		"windows":   dtos,
	})
}
