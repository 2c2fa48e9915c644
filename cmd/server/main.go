package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shroudhq/shroud/internal/config"
	httpapi "github.com/shroudhq/shroud/internal/http"
	"github.com/shroudhq/shroud/internal/persona"
	"github.com/shroudhq/shroud/internal/service"
	"github.com/shroudhq/shroud/internal/silhouette"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "shroud").Logger()

	lexicon, err := persona.Load(cfg.PersonaFile)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.PersonaFile).Msg("persona not loaded, using fallback phrasing")
		lexicon = persona.Empty()
	}

	var client silhouette.Client
	if cfg.SilBase == "" {
		client = silhouette.Mock{}
		logger.Info().Msg("using mock silhouette client")
	} else {
		client = silhouette.NewHTTPClient(cfg.SilBase)
	}

	orch := &service.Orchestrator{
		Silhouette: client,
		Persona:    lexicon,
	}

	router := httpapi.Router(cfg, orch, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("silhouette", cfg.SilBase).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
