// irisd serves the intercept engine over HTTP: catalog resolution through
// the NASA Horizons / MPC / Space-Track fallback chain, Keplerian
// propagation, intercept search and launch window scans.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/viper"

	"github.com/AbhishreeBh0208/iris/api"
	"github.com/AbhishreeBh0208/iris/catalog"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg := loadConfig()

	providers := []catalog.Provider{
		catalog.NewHorizonsClient(cfg.horizonsURL, logger),
		catalog.NewMPCClient(cfg.mpcURL, logger),
	}
	if cfg.spaceTrackUser != "" {
		providers = append(providers, catalog.NewSpaceTrackClient(cfg.spaceTrackURL, cfg.spaceTrackUser, cfg.spaceTrackPass, logger))
	} else {
		level.Info(logger).Log("msg", "no space-track credentials, satellite lookups disabled")
	}

	coordinator := catalog.NewCoordinator(logger, providers...)
	srv := api.NewServer(cfg.addr, coordinator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		level.Info(logger).Log("msg", "starting server", "addr", cfg.addr, "sources", len(providers))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "server listen error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	level.Info(logger).Log("msg", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "server shutdown error", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "server stopped")
}

type daemonConfig struct {
	addr           string
	horizonsURL    string
	mpcURL         string
	spaceTrackURL  string
	spaceTrackUser string
	spaceTrackPass string
}

// loadConfig reads the daemon settings from the environment (IRIS_HTTP_ADDR,
// IRIS_HORIZONS_URL, IRIS_MPC_URL, IRIS_SPACETRACK_*). The engine constants
// (margin factor, feasibility threshold, Isp table) come from the engine's
// own TOML configuration, not from here.
func loadConfig() daemonConfig {
	v := viper.New()
	v.SetEnvPrefix("iris")
	v.AutomaticEnv()
	v.SetDefault("http_addr", ":8080")

	return daemonConfig{
		addr:           v.GetString("http_addr"),
		horizonsURL:    v.GetString("horizons_url"),
		mpcURL:         v.GetString("mpc_url"),
		spaceTrackURL:  v.GetString("spacetrack_url"),
		spaceTrackUser: v.GetString("spacetrack_identity"),
		spaceTrackPass: v.GetString("spacetrack_password"),
	}
}
