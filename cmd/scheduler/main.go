package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shroudhq/shroud/internal/config"
	"github.com/shroudhq/shroud/internal/scheduler"
	"github.com/shroudhq/shroud/internal/silhouette"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "shroud-scheduler").Logger()

	var client silhouette.Client
	if cfg.SilBase == "" {
		client = silhouette.Mock{}
		logger.Info().Msg("using mock silhouette client")
	} else {
		client = silhouette.NewHTTPClient(cfg.SilBase)
	}

	store, err := scheduler.OpenCounterStore(cfg.CountersPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CountersPath).Msg("failed to open counters store")
	}
	defer store.Close()

	sched := &scheduler.Scheduler{
		Silhouette: client,
		Store:      store,
		Metrics:    scheduler.NewMetrics(prometheus.DefaultRegisterer),
		Logger:     logger,
		Interval:   cfg.SchedInterval,
		Once:       cfg.SchedOnce,
		DryRun:     cfg.DryRun,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SchedMode == "ping" {
		if err := sched.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("silhouette unreachable")
		}
		logger.Info().Msg("silhouette reachable")
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Str("port", cfg.SchedMetricsPort).Msg("metrics endpoint started")
		if err := http.ListenAndServe(":"+cfg.SchedMetricsPort, mux); err != nil {
			logger.Error().Err(err).Msg("metrics endpoint error")
		}
	}()

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("scheduler error")
	}
	logger.Info().Msg("scheduler stopped")
}
