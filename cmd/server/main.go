// Package main is the entry point for the printstock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"printstock/internal/config"
	"printstock/internal/domain/auth"
	"printstock/internal/domain/taxreport"
	"printstock/internal/infrastructure/cache"
	v1 "printstock/internal/infrastructure/http/v1"
	"printstock/internal/infrastructure/http/v1/middleware"
	"printstock/internal/infrastructure/storage/postgres"
	"printstock/internal/infrastructure/storage/postgres/catalog_repo"
	"printstock/internal/infrastructure/storage/postgres/edition_repo"
	"printstock/internal/inventory"
	"printstock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting printstock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	// --- Inventory store ---
	printRepo := catalog_repo.NewPrintRepo(txManager)
	distributorRepo := catalog_repo.NewDistributorRepo(txManager)
	editionRepo := edition_repo.NewRepo(txManager)

	remote := inventory.NewRepositoryRemote(editionRepo, printRepo, distributorRepo)
	store := inventory.NewStore(remote)

	if err := store.Initialize(ctx); err != nil {
		// The store stays not ready and retries on demand; the server still
		// comes up so health endpoints can report the failure.
		log.Warnw("initial inventory load failed", "error", err)
	}

	// --- Report cache ---
	var reportCache taxreport.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalw("failed to connect to redis", "error", err, "addr", cfg.RedisAddr)
		}
		reportCache = cache.NewRedisCache(client, cache.DefaultReportTTL)
		log.Infow("report cache enabled", "addr", cfg.RedisAddr)
	} else {
		reportCache = cache.NewNoopCache()
		log.Info("report cache disabled")
	}

	reportService := taxreport.NewService(store, reportCache)

	// --- JWT ---
	var jwtValidator middleware.JWTValidator
	if cfg.JWTSecret != "" {
		jwtValidator = auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))
	} else {
		log.Warn("JWT_SECRET not set, API authentication disabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		TxManager:    txManager,
		Logger:       log,
		JWTValidator: jwtValidator,
		Store:        store,
		Reports:      reportService,
		Audit:        auditService,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
