package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"kas/internal/cli"
	apphttp "kas/internal/http"
	applog "kas/internal/log"
	"kas/internal/services"
	"kas/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	result := cli.InitBackend(startupCtx, logger, cfg)

	st := store.New()
	txService := services.NewTransactionService(st, result.Adapter)
	sessionService := services.NewSessionService(result.Adapter, cfg.AuthUsername, cfg.AuthPassword)

	if err := txService.Load(startupCtx); err != nil {
		logger.Error("Failed to load transactions", "error", err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(cfg, txService, sessionService)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	logger.Info("Starting kas server",
		"port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
