// Package api is the HTTP surface of the intercept engine: a thin JSON layer
// over the core computations and the catalog coordinator. Boundary units
// apply throughout the wire format (AU, AU/day, degrees); the conversion to
// engine units happens at decode time.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/AbhishreeBh0208/iris/catalog"
)

// Source resolves catalog objects for the serving layer. *catalog.Coordinator
// satisfies it.
type Source interface {
	ObjectTrajectory(ctx context.Context, id string, start, end time.Time, step time.Duration) (*catalog.TrajectoryReport, error)
	Search(ctx context.Context, query string) []catalog.Object
	ProviderNames() []string
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	source     Source
	logger     log.Logger
	started    time.Time
}

// NewServer creates a configured HTTP server on the given address.
func NewServer(addr string, source Source, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Server{
		source:  source,
		logger:  logger,
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", metricsHandler())
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/object/{name}", s.handleObject)
	mux.HandleFunc("GET /api/trajectory/{name}", s.handleTrajectory)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/windows", s.handleWindows)

	var handler http.Handler = mux
	handler = loggingMiddleware(logger)(handler)
	handler = metricsMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func probePath(path string) bool {
	return path == "/healthz" || path == "/metrics"
}

func loggingMiddleware(logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			if probePath(r.URL.Path) {
				return
			}
			logger.Log(
				"component", "api",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sr.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", r.RemoteAddr,
			)
		})
	}
}
