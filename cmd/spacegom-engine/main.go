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

	"github.com/terra-clan/spacegom-engine/internal/api"
	"github.com/terra-clan/spacegom-engine/internal/catalog"
	"github.com/terra-clan/spacegom-engine/internal/cleanup"
	"github.com/terra-clan/spacegom-engine/internal/config"
	"github.com/terra-clan/spacegom-engine/internal/dice"
	"github.com/terra-clan/spacegom-engine/internal/game"
	"github.com/terra-clan/spacegom-engine/internal/names"
	"github.com/terra-clan/spacegom-engine/internal/services"
	"github.com/terra-clan/spacegom-engine/internal/session"
	"github.com/terra-clan/spacegom-engine/internal/storage"
	"github.com/terra-clan/spacegom-engine/internal/stream"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting spacegom-engine",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"storage", cfg.Database.Driver,
		"redis_locks", cfg.Redis.Enabled,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	registry := services.NewRegistry()

	// Game storage
	var repo storage.Repository
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
		if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pg, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
			DSN:          cfg.Database.DSN,
			MaxOpenConns: int32(cfg.Database.MaxOpenConns),
			MaxIdleConns: int32(cfg.Database.MaxIdleConns),
		})
		if err != nil {
			slog.Error("failed to create database repository", "error", err)
			os.Exit(1)
		}
		repo = pg
		slog.Info("database connected successfully")

		pgHealth, err := services.NewPostgresProvider(initCtx, cfg.Database.DSN)
		if err != nil {
			slog.Error("failed to create postgres provider", "error", err)
			os.Exit(1)
		}
		defer pgHealth.Close()
		registry.Register("postgres", pgHealth)
	default:
		slog.Warn("using in-memory game storage; games are lost on restart")
		repo = storage.NewMemoryRepository()
	}
	defer repo.Close()

	// Per-game locks
	var locker services.Locker
	if cfg.Redis.Enabled {
		rl, err := services.NewRedisLocker(initCtx, services.RedisLockerConfig{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.LockTTL,
		})
		if err != nil {
			slog.Error("failed to create redis locker", "error", err)
			os.Exit(1)
		}
		defer rl.Close()
		registry.Register("redis", rl)
		locker = rl
	} else {
		ml := services.NewMemoryLocker()
		registry.Register("locks", ml)
		locker = ml
	}

	slog.Info("services registered", "services", registry.List())

	// Reference data
	catalogLoader := catalog.NewLoader()
	if err := catalogLoader.LoadFromDir(cfg.Catalog.Dir); err != nil {
		slog.Warn("failed to load catalog from dir", "dir", cfg.Catalog.Dir, "error", err)
	}

	nameService := names.NewService(cfg.Names.Dir, nil)
	if err := nameService.Reload(); err != nil {
		slog.Warn("failed to load names", "dir", cfg.Names.Dir, "error", err)
	}

	roller := dice.NewRoller(nil)
	if cfg.Game.DiceSeed != 0 {
		roller = dice.NewSeededRoller(uint64(cfg.Game.DiceSeed))
		slog.Info("dice are seeded", "seed", cfg.Game.DiceSeed)
	}

	engine := game.NewEngine(catalogLoader, nameService, game.WithRoller(roller))
	hub := stream.NewHub()
	sessions := session.NewManager(engine, repo, locker, hub,
		session.WithDefaultDifficulty(cfg.Game.DefaultDifficulty))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner := cleanup.NewCleaner(sessions, cfg.Cleanup.Interval, cfg.Cleanup.Retention)
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, sessions, catalogLoader, registry, hub)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("spacegom-engine stopped")
}
