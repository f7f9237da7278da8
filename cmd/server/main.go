package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/veo1/health-scanner/app/server"
	"github.com/veo1/health-scanner/config"
	"github.com/veo1/health-scanner/models"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Create the schema, seed an empty store and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()

	if err := run(*migrateOnlyFlag); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := server.NewLogger(cfg.Log, os.Stderr)

	db, err := models.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Debug)
	if err != nil {
		return err
	}
	defer func() {
		if err := models.Close(db); err != nil {
			logger.Error("close database", slog.String("error", err.Error()))
		}
	}()

	ctx := context.Background()
	repo := models.NewProductsRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	if !cfg.Database.SkipSeed {
		n, err := repo.Seed(ctx, models.SampleCatalog)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("sample catalog seeded", slog.Int("products", n))
		}
	}
	if migrateOnly {
		logger.Info("migrations completed; exiting as requested")
		return nil
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.NewRouter(repo, cfg.CORS, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}
