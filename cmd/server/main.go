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

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"notehub/internal/caching"
	"notehub/internal/config"
	"notehub/internal/handlers"
	"notehub/internal/jobs/background"
	"notehub/internal/metrics"
	"notehub/internal/middleware"
	"notehub/internal/repositories"
	"notehub/internal/services"
	"notehub/pkg/database"
	"notehub/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.Server.Env, cfg.Log.Level)
	zlog := logger.GetLogger()
	defer zlog.Sync()

	metrics.Register()

	// Database connection pool
	pool, err := database.NewPool(cfg.DB.URL)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	zlog.Info("Database connected")

	// Tenant cache
	cache := caching.NewRedisTenantCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)

	// Services
	policy := services.NewAccessPolicy()
	tokenSvc := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	authSvc := services.NewAuthService(userRepo, tenantRepo, tokenSvc)
	tenantSvc := services.NewTenantService(tenantRepo, cache, policy, zlog)
	noteSvc := services.NewNoteService(noteRepo, tenantSvc, policy)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	noteHandlers := handlers.NewNoteHandlers(noteSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cache)

	// Background jobs
	scheduler, err := background.NewJobScheduler(tenantRepo, noteRepo, cache, zlog, cfg.Jobs.UsageSnapshotInterval)
	if err != nil {
		zlog.Fatal("Failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID)
	e.Use(logger.Middleware(zlog))
	e.Use(metrics.Middleware())

	// Public endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.POST("/auth/login", authHandlers.Login)

	// Protected routes
	notes := e.Group("/notes", middleware.Session(tokenSvc))
	notes.GET("", noteHandlers.ListNotes)
	notes.POST("", noteHandlers.CreateNote)
	notes.GET("/:id", noteHandlers.GetNote)
	notes.PUT("/:id", noteHandlers.UpdateNote)
	notes.DELETE("/:id", noteHandlers.DeleteNote)

	tenants := e.Group("/tenants", middleware.Session(tokenSvc), middleware.RequireAdmin())
	tenants.POST("/:slug/upgrade", tenantHandlers.UpgradeTenant)

	zlog.Info("Server starting",
		zap.String("version", version),
		zap.String("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
	)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
}
