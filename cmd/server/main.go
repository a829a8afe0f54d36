package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/datainspect/inspector/internal/config"
	"github.com/datainspect/inspector/internal/logging"
	"github.com/datainspect/inspector/internal/store"
	"github.com/datainspect/inspector/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"storage_backend", cfg.Storage.Backend,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	st, err := newStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open dataset store", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(st, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// newStore builds the dataset store selected by configuration.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch strings.ToLower(cfg.Storage.Backend) {
	case "s3":
		slog.Info("using S3 dataset store",
			"bucket", cfg.Storage.S3Bucket,
			"region", cfg.Storage.S3Region,
			"prefix", cfg.Storage.S3Prefix,
		)
		return store.NewS3(ctx, store.S3Config{
			Bucket:          cfg.Storage.S3Bucket,
			Region:          cfg.Storage.S3Region,
			Prefix:          cfg.Storage.S3Prefix,
			AccessKeyID:     cfg.Storage.S3AccessKeyID,
			SecretAccessKey: cfg.Storage.S3SecretAccessKey,
		})
	default:
		slog.Info("using local dataset store", "dir", cfg.Storage.DataDir)
		return store.NewLocal(cfg.Storage.DataDir)
	}
}
