package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agentforge/license-server/internal/api"
	"github.com/agentforge/license-server/internal/config"
	"github.com/agentforge/license-server/internal/database"
	"github.com/agentforge/license-server/internal/identity"
	"github.com/agentforge/license-server/internal/license"
	"github.com/agentforge/license-server/internal/marketplace"
	"github.com/agentforge/license-server/internal/subscription"
	"github.com/agentforge/license-server/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx := context.Background()
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	subs := subscription.NewRepository(db.Pool())
	verifier := identity.NewGitHubVerifier(cfg.GitHubAPIURL, cfg.GitHubTimeout())

	var marketplaceClient marketplace.Client
	if cfg.MarketplaceToken != "" {
		marketplaceClient = marketplace.NewGitHubClient(cfg.MarketplaceToken, cfg.GitHubAPIURL, cfg.GitHubTimeout())
	} else {
		slog.Info("no marketplace token configured; fallback check disabled")
	}

	if cfg.WebhookSecret == "" {
		slog.Warn("no webhook secret configured; signature verification disabled")
	}

	licenses := license.NewService(verifier, subs, marketplaceClient)
	ingestor := webhook.NewService(cfg.WebhookSecret, subs)

	router := api.NewRouter(api.RouterDeps{
		DB:       db,
		Licenses: licenses,
		Ingestor: ingestor,
		Version:  cfg.Version,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting license server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
