package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docdigest/internal/api"
	"github.com/dgallion1/docdigest/internal/config"
	"github.com/dgallion1/docdigest/internal/digest"
	"github.com/dgallion1/docdigest/internal/persona"
	"github.com/dgallion1/docdigest/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize persona registry.
	registry := persona.Builtin()
	if cfg.PersonaConfig != "" {
		if err := persona.LoadInto(registry, cfg.PersonaConfig); err != nil {
			log.Error("failed to load persona config", "path", cfg.PersonaConfig, "error", err)
			os.Exit(1)
		}
		log.Info("loaded persona config", "path", cfg.PersonaConfig)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, digest.New(registry), log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docdigest", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
