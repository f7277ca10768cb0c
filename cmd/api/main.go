// Package main is the entry point for the recurring-engine API server.
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
	"github.com/redis/go-redis/v9"

	"github.com/billtrack/recurring-engine/config"
	"github.com/billtrack/recurring-engine/internal/application/adapter"
	"github.com/billtrack/recurring-engine/internal/infra/db"
	"github.com/billtrack/recurring-engine/internal/infra/dependency"
	"github.com/billtrack/recurring-engine/internal/infra/server/router"
	"github.com/billtrack/recurring-engine/internal/integration/cache"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/controller"
	"github.com/billtrack/recurring-engine/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Recurring Engine API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"timezone", cfg.Engine.Timezone,
	)

	loc, err := time.LoadLocation(cfg.Engine.Timezone)
	if err != nil {
		slog.Error("Invalid budgeting timezone", "timezone", cfg.Engine.Timezone, "error", err)
		os.Exit(1)
	}

	// Initialize database connection
	var engine http.Handler

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, serving health endpoints only",
			"error", err,
		)
		healthController := controller.NewHealthController(func() bool { return false })
		engine = router.NewRouter(healthController, nil, nil).Setup(cfg.Server.Environment)
	} else {
		if err := database.AutoMigrate(
			&model.TransactionModel{},
			&model.RecurringExpenseModel{},
			&model.MatchedInstanceModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()

		injector := dependency.NewInjector(cfg, database.DB(), newSummaryCache(&cfg.Redis), loc)
		engine = injector.Router.Setup(cfg.Server.Environment)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// newSummaryCache connects to Redis when configured and falls back to a
// no-op cache otherwise. Summaries are recomputed on every miss, so the
// service stays correct without Redis.
func newSummaryCache(cfg *config.RedisConfig) adapter.SummaryCache {
	if cfg.URL == "" {
		slog.Info("Redis not configured, summary caching disabled")
		return cache.NoopSummaryCache{}
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid Redis URL, summary caching disabled", "error", err)
		return cache.NoopSummaryCache{}
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, summary caching disabled", "error", err)
		return cache.NoopSummaryCache{}
	}

	slog.Info("Redis summary cache enabled", "ttl", cfg.CacheTTL)
	return cache.NewRedisSummaryCache(client, cfg.CacheTTL)
}
