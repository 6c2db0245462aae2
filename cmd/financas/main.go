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

	"financas/internal/audit"
	"financas/internal/auth"
	"financas/internal/cli"
	apphttp "financas/internal/http"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	dataStore := cli.NewStore(logger, cfg)
	authManager := auth.NewManager(cfg.DemoUser, cfg.DemoPassword, cfg.SessionTTL)
	auditLog := audit.NewLog()

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Options{
		Store:              dataStore,
		Auth:               authManager,
		Audit:              auditLog,
		MonthlyBudgetCents: cfg.MonthlyBudgetCents,
		RateLimitRPM:       cfg.RateLimitRPM,
		SeedDemoData:       cfg.SeedDemoData,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		srv.CloseResources()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
