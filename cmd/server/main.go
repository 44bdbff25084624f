package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/orderlens/internal/app/services"
	"github.com/fr0stylo/orderlens/internal/config"
	"github.com/fr0stylo/orderlens/internal/observability"
	"github.com/fr0stylo/orderlens/internal/playauto"
	"github.com/fr0stylo/orderlens/internal/server"
	"github.com/fr0stylo/orderlens/internal/server/routes"
)

const shutdownTimeout = 5 * time.Second

func Run() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, closeLog := observability.NewLogger(observability.LoggerConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	slog.SetDefault(log)
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log sink: %v\n", err)
		}
	}()

	if cfg.UsesLocalSessionSecret() {
		slog.Warn("ORDERLENS_SESSION_SECRET not set, using local development fallback")
	}

	client, err := playauto.NewClient(playauto.Credentials{
		APIKey:        cfg.PlayAuto.APIKey,
		AccountID:     cfg.PlayAuto.AccountID,
		AccountSecret: cfg.PlayAuto.AccountSecret,
	},
		playauto.WithBaseURL(cfg.PlayAuto.BaseURL),
		playauto.WithTimeout(cfg.PlayAuto.Timeout()),
		playauto.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("failed to create playauto client: %w", err)
	}

	lookup := services.NewStockLookupService(client, cfg.PlayAuto.Resource, log)
	sessionStore := routes.NewSessionStore(routes.SessionConfig{
		Secret:        cfg.Auth.SessionSecret,
		SecureCookies: cfg.Auth.SecureCookie,
	})

	srv := server.New(log)
	srv.RegisterRouter(routes.NewLookupRoutes(lookup, sessionStore, log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("Starting server", "port", cfg.Server.Port, "env", cfg.Environment, "resource", cfg.PlayAuto.Resource)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	stop()
	slog.Info("Caught shutdown signal, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func main() {
	if err := Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
