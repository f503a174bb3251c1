// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/leagueapi/internal/config"
	appdb "github.com/codr1/leagueapi/internal/db"
	"github.com/codr1/leagueapi/internal/email"
	"github.com/codr1/leagueapi/internal/ratelimit"
	"github.com/codr1/leagueapi/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	setupLogger(cfg.App.Environment)

	database, err := appdb.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		return fmt.Errorf("create email sender: %w", err)
	}

	limiter := ratelimit.New(&ratelimit.Config{
		RequestsPerSecond: cfg.Auth.RequestsPerSecond,
		Burst:             cfg.Auth.Burst,
		LoginMaxAttempts:  cfg.Auth.LoginMaxAttempts,
		LoginLockout:      cfg.Auth.LoginLockout,
	})
	defer limiter.Close()

	if err := scheduler.Init(); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	if err := scheduler.RegisterTokenCleanupJob(database.Queries, cfg.Auth.TokenTTL, cfg.Auth.TokenCleanupCron); err != nil {
		return fmt.Errorf("register token cleanup: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}()

	initHandlers(cfg, database, sender, limiter)
	server := newServer(cfg)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Int("port", cfg.App.Port).
			Str("environment", cfg.App.Environment).
			Bool("metrics", cfg.Features.EnableMetrics).
			Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
