package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/TimurManjosov/churnguard/internal/api"
	"github.com/TimurManjosov/churnguard/internal/config"
	"github.com/TimurManjosov/churnguard/internal/logging"
	"github.com/TimurManjosov/churnguard/internal/model"
	"github.com/TimurManjosov/churnguard/internal/predict"
	"github.com/TimurManjosov/churnguard/internal/telemetry"
)

func main() {
	boot := logging.New("info", "console", os.Stderr)
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config")
	}
	if err := cfg.Validate(); err != nil {
		boot.Fatal().Err(err).Msg("config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	telemetry.Init()
	srv, metricsSrv, err := newServers(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ModelPath).Msg("startup")
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("metrics server")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	_ = metricsSrv.Shutdown(ctxShut)
	log.Info().Msg("stopped")
}

// newServers loads the model once and wires the app and metrics servers.
// A bad artifact is returned as an error so startup stops.
func newServers(cfg *config.Config, log zerolog.Logger) (*http.Server, *http.Server, error) {
	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	log.Info().
		Str("path", cfg.ModelPath).
		Str("schema_version", m.SchemaVersion()).
		Str("trained_at", m.TrainedAt()).
		Int("width", m.Width()).
		Msg("model loaded")
	telemetry.SetModelInfo(m.SchemaVersion(), m.Width())

	srvAPI := api.NewServer(predict.NewService(m), log, api.Options{
		RateLimitPerIP: cfg.RateLimitPerIP,
		RequestTimeout: cfg.RequestTimeout,
		TrustProxy:     cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srvAPI.Router(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: cfg.RequestTimeout + time.Second,
		IdleTimeout:  60 * time.Second,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, metricsSrv, nil
}
