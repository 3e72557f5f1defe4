package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docqa/internal/answer"
	"github.com/dgallion1/docqa/internal/api"
	"github.com/dgallion1/docqa/internal/config"
	"github.com/dgallion1/docqa/internal/inference"
	"github.com/dgallion1/docqa/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	client := inference.NewClient(cfg.Inference())

	strategy, err := answer.New(cfg.Answer(), client, log.With("component", "answer"))
	if err != nil {
		log.Error("invalid answer configuration", "error", err)
		os.Exit(1)
	}

	// Initialize sessions.
	sessions := session.NewService(strategy, log.With("component", "session"), cfg.Session())
	sessions.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(sessions, client, log, cfg)

	// No write timeout: chunked answers issue one upstream call per chunk.
	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		sessions.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
	}()

	log.Info("starting docqa",
		"port", cfg.Port,
		"mode", strategy.Mode(),
		"answer_model", client.Model(inference.TaskGeneration),
		"summary_model", client.Model(inference.TaskSummarization),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
