// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/ora-boards-backend/internal/api"
	"github.com/Marga-Ghale/ora-boards-backend/internal/api/handlers"
	"github.com/Marga-Ghale/ora-boards-backend/internal/config"
	"github.com/Marga-Ghale/ora-boards-backend/internal/cron"
	"github.com/Marga-Ghale/ora-boards-backend/internal/db"
	"github.com/Marga-Ghale/ora-boards-backend/internal/logger"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
	"github.com/Marga-Ghale/ora-boards-backend/internal/repository/memory"
	"github.com/Marga-Ghale/ora-boards-backend/internal/seed"
	"github.com/Marga-Ghale/ora-boards-backend/internal/service"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Storage
	// ============================================
	var repos *repository.Repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		zlog.Info("running database migrations", zap.String("path", cfg.MigrationsPath))
		if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, zlog); err != nil {
			zlog.Fatal("migration failed", zap.Error(err))
		}

		pg, err := db.NewPostgresDB(cfg.DatabaseURL, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to PostgreSQL", zap.Error(err))
		}
		defer pg.Close()

		repos = repository.NewRepositories(pg.Pool, pg.SQL)
	default:
		zlog.Warn("using in-memory storage; data is lost on restart")
		repos = memory.NewRepositories()
	}

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var cache service.Cache = service.NopCache{}
	cacheStatus := "disabled"
	if cfg.RedisURL != "" {
		redisDB, err := db.NewRedisDB(cfg.RedisURL, zlog)
		if err != nil {
			zlog.Warn("failed to connect to Redis, continuing without cache", zap.Error(err))
		} else {
			defer redisDB.Close()
			cache = redisDB
			cacheStatus = "redis"
		}
	}

	// ============================================
	// Services + handlers
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config: cfg,
		Repos:  repos,
		Cache:  cache,
		Logger: zlog,
	})
	h := handlers.NewHandlers(services, zlog)

	// ============================================
	// Seed data (development only)
	// ============================================
	if cfg.SeedData && !cfg.IsProduction() {
		if err := seed.SeedData(context.Background(), services, repos, zlog); err != nil {
			zlog.Error("seeding failed", zap.Error(err))
		}
	}

	// ============================================
	// Cron jobs
	// ============================================
	scheduler := cron.NewScheduler(services, zlog)
	if err := scheduler.Start(cron.Schedules{
		TokenCleanup:    cfg.TokenCleanupSchedule,
		ActivityCleanup: cfg.ActivityCleanupSchedule,
	}); err != nil {
		zlog.Fatal("invalid cron schedule", zap.Error(err))
	}
	defer scheduler.Stop()

	// ============================================
	// Router
	// ============================================
	router := api.NewRouter(api.RouterDeps{
		Handlers:    h,
		AuthService: services.Auth,
		Logger:      zlog,
		CORSOrigins: cfg.CORSOrigins,
		Health: func() gin.H {
			return gin.H{"storage": cfg.StorageDriver, "cache": cacheStatus}
		},
	})

	// ============================================
	// Start server
	// ============================================
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// ============================================
	// Graceful shutdown
	// ============================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
