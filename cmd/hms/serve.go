package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/openclinic/hms/internal/api"
	"github.com/openclinic/hms/internal/config"
	"github.com/openclinic/hms/internal/pharmacy"
	"github.com/openclinic/hms/internal/scheduling"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the CSV tables and serve the scheduling API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if !cfg.IsDev() {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func serve(cfg config.Config) error {
	logger := newLogger(cfg)
	logger.Info().
		Str("env", cfg.Env).
		Str("http_port", cfg.HTTPPort).
		Str("data_dir", cfg.DataDir).
		Msg("hms starting up")

	tbl := newTables(cfg.DataDir)
	if err := tbl.load(); err != nil {
		return err
	}
	logger.Info().Interface("tables", tbl.counts()).Msg("CSV tables loaded")

	engine := scheduling.NewService(
		tbl.slots,
		tbl.appointments,
		tbl.outcomes,
		tbl.prescriptions,
		tbl.medications,
		tbl.users,
		logger.With().Str("component", "scheduling").Logger(),
	)
	dispenser := pharmacy.NewService(
		tbl.medications,
		tbl.prescriptions,
		logger.With().Str("component", "pharmacy").Logger(),
	)

	router := api.NewRouter(api.RouterConfig{
		Engine:   engine,
		Pharmacy: dispenser,
		Meds:     tbl.medications,
		Users:    tbl.users,
		Flush:    tbl.flush,
		Counts:   tbl.counts,
		Logger:   logger.With().Str("component", "http").Logger(),
		Env:      cfg.Env,
		Version:  version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-rootCtx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}

	if cfg.FlushOnExit {
		if err := tbl.flush(); err != nil {
			return err
		}
		logger.Info().Msg("CSV tables flushed")
	}
	return nil
}
