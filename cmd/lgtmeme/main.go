package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/go-co-op/gocron/v2"

	githubadapter "github.com/ericfisherdev/lgtmeme/internal/adapter/driven/github"
	httphandler "github.com/ericfisherdev/lgtmeme/internal/adapter/driving/http"
	"github.com/ericfisherdev/lgtmeme/internal/application"
	"github.com/ericfisherdev/lgtmeme/internal/config"
	"github.com/ericfisherdev/lgtmeme/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"github_username", cfg.GitHubUsername,
		"orgs", cfg.Orgs,
		"poll_interval", cfg.PollInterval,
		"approval_window", cfg.ApprovalWindow,
		"listen_addr", cfg.ListenAddr,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire adapters and the celebration service.
	ghClient := githubadapter.NewClient(cfg.GitHubToken)
	svc := application.NewCelebrationService(
		ghClient,
		cfg.GitHubUsername,
		cfg.Orgs,
		cfg.ApprovalWindow,
		model.DefaultMemeCatalog,
	)

	// 4. Schedule the polling cycle: once immediately, then on the interval.
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.PollInterval),
		gocron.NewTask(func() {
			if err := svc.RunCycle(ctx); err != nil {
				slog.Error("celebration cycle failed", "error", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}
	sched.Start()

	// 5. Start the status HTTP server.
	handler := httphandler.NewServeMux(httphandler.NewHandler(svc, slog.Default()), slog.Default())
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("lgtmeme started", "poll_interval", cfg.PollInterval)

	// 6. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	if err := sched.Shutdown(); err != nil {
		slog.Error("scheduler shutdown error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
