package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/keepsake-io/keepsake/internal/api"
	"github.com/keepsake-io/keepsake/internal/cache"
	"github.com/keepsake-io/keepsake/internal/config"
	"github.com/keepsake-io/keepsake/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	logger.Info("Starting Keepsake...")

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/keepsake.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(err))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath))

	// Initialize PostgreSQL store
	st, err := store.New(cfg.Database.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("PostgreSQL unavailable", zap.Error(err))
	}
	if err := st.Migrate(context.Background(), "migrations"); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// Initialize optional Redis analytics cache
	var analyticsCache *cache.Cache
	if cfg.Cache.RedisURL != "" {
		c, cacheErr := cache.New(cfg.Cache.RedisURL, time.Duration(cfg.Cache.TTLSeconds)*time.Second, logger)
		if cacheErr != nil {
			logger.Warn("Redis unavailable, running without analytics cache", zap.Error(cacheErr))
		} else {
			analyticsCache = c
		}
	}

	// Build HTTP handler
	handler := api.NewHandler(st, analyticsCache, logger)

	// Start server
	port := fmt.Sprintf("%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("Keepsake listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Keepsake...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
	if analyticsCache != nil {
		analyticsCache.Close()
	}
	st.Close()
}
