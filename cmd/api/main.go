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

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"bmi-tracker/internal/clock"
	"bmi-tracker/internal/config"
	"bmi-tracker/internal/observability"
	"bmi-tracker/internal/server"
	"bmi-tracker/internal/store"
	_ "bmi-tracker/internal/store/loader"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "bmi-api:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	configPath := pflag.StringP("config", "c", os.Getenv("BMI_CONFIG"), "path to a TOML config file")
	pflag.Parse()

	cfg, err := config.Load(config.Options{Path: *configPath})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger
	level, _ := cfg.LogLevel()
	if err := observability.InitLogger(level); err != nil {
		return err
	}
	defer observability.SyncLogger()

	for _, key := range cfg.Undecoded {
		observability.Logger.Warn("unknown config key ignored", zap.String("key", key))
	}

	// Tracing, metrics and log export
	if cfg.Telemetry.Enabled {
		shutdown, err := initTelemetry(ctx, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				observability.Logger.Warn("telemetry shutdown", zap.Error(err))
			}
		}()
	}

	// Store
	db, err := store.Open(ctx, cfg.StoreConfig())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			observability.Logger.Warn("closing store", zap.Error(err))
		}
	}()

	loc, _ := cfg.Location()

	// Router
	router := server.NewRouter(server.Deps{
		Store: db,
		Clock: clock.System{Location: loc},
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.ListenAddr),
			zap.String("store", db.Name()),
			zap.String("timezone", loc.String()),
			zap.Bool("telemetry", cfg.Telemetry.Enabled),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
		}
		return nil
	case <-ctx.Done():
	}

	return shutdownServer(srv, cfg.ShutdownTimeout)
}

func shutdownServer(srv *http.Server, timeout time.Duration) error {
	observability.Logger.Info("shutting down", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
