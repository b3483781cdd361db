package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"termly/internal/cli"
	apphttp "termly/internal/http"
	"termly/internal/ledger"
	applog "termly/internal/log"
	"termly/internal/persist"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := persist.Open(cfg)
	if err != nil {
		logger.Error("Failed to open persistence backend",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer closeKV()

	store, err := ledger.Open(ctx, kv, ledger.SystemClock{}, ledger.NewUUID, cfg.DefaultCurrency)
	if err != nil {
		logger.Error("Failed to load ledger",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err.Error())
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, ledger.SystemClock{}, apphttp.Options{
		CacheSize: cfg.DashboardCacheSize,
		CacheTTL:  cfg.DashboardCacheTTL,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting termly server",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully",
		applog.FieldComponent, applog.ComponentApp,
		applog.FieldOperation, applog.OpShutdown)
}
