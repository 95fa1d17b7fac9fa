// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/canchas/internal/config"
	"github.com/codr1/canchas/internal/db"
	"github.com/codr1/canchas/internal/email"
	"github.com/codr1/canchas/internal/media"
	"github.com/codr1/canchas/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func newNotifier(ctx context.Context, cfg *config.Config) (*email.Notifier, error) {
	if !cfg.Email.Enabled {
		log.Info().Msg("Email disabled")
		return email.NewNotifier(nil), nil
	}
	client, err := email.NewSESClient(ctx, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("create SES client: %w", err)
	}
	return email.NewNotifier(client), nil
}

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", "config.yaml"), "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Booking.Timezone).Msg("Failed to load timezone")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	files, err := media.NewStore(cfg.App.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare media directory")
	}

	notifier, err := newNotifier(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure email")
	}

	jobs, err := scheduler.New(loc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if err := scheduler.RegisterJobs(jobs, cfg.Scheduler, database, notifier, loc); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduler jobs")
	}

	server, closeServer := newServer(cfg, database, files, notifier, loc)
	defer closeServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		jobs.Start()
		<-ctx.Done()
		return jobs.Stop()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		notifier.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
