package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeRating/app/echo-server/router"
	"storeRating/business/dashboard"
	"storeRating/business/rating"
	"storeRating/business/store"
	"storeRating/business/user"
	"storeRating/internal/middleware"
	"storeRating/internal/repository/notification"
	psqlRepo "storeRating/internal/repository/postgres"
	redisRepo "storeRating/internal/repository/redis"
	"storeRating/internal/rest"
	"storeRating/pkg/config"
	"storeRating/pkg/database"
	redisClient "storeRating/pkg/database/redis"
	"storeRating/pkg/logger"
	"storeRating/pkg/metrics"
	"storeRating/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Rate limiting is only enabled when a Redis host is configured
	var rdb *redis.Client
	var limiter middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		rdb, err = redisClient.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}

		limiter, err = redisRepo.NewRateLimitRepository(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
		if err != nil {
			logger.Fatal("Failed to init rate limiter", "error", err)
		}
	} else {
		logger.Warn("REDIS_HOST not set, rate limiting disabled")
	}

	// Init notification from mailjet
	var notifier user.NotificationRepository
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)
	if mailjetEmail.Enabled() {
		notifier = mailjetEmail
	} else {
		logger.Warn("Mailjet not configured, welcome emails disabled")
	}

	validate := utils.NewValidator()
	tokens := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expire)

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	storeRepo := psqlRepo.NewStoreRepository(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)

	// Init service
	userSvc := user.NewUserService(userRepo, ratingRepo, tokens, validate, notifier)
	storeSvc := store.NewStoreService(storeRepo, ratingRepo, userRepo, validate)
	ratingSvc := rating.NewRatingService(ratingRepo, storeRepo)
	dashboardSvc := dashboard.NewDashboardService(userRepo, storeRepo, ratingRepo)

	// Init handler
	timeout := cfg.Server.RequestTimeout
	authHandler := rest.NewAuthHandler(userSvc, validate, timeout)
	storeHandler := rest.NewStoreHandler(storeSvc, timeout)
	ratingHandler := rest.NewRatingHandler(ratingSvc, validate, timeout)
	adminHandler := rest.NewAdminHandler(userSvc, storeSvc, dashboardSvc, validate, timeout)
	healthHandler := rest.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			logger.Info("http_request",
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestMetrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", healthHandler.Health)

	// Setup routes
	api := e.Group("/api")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}

	router.SetupAuthRoutes(api, authHandler, tokens)
	router.SetupStoreRoutes(api, storeHandler, tokens)
	router.SetupRatingRoutes(api, ratingHandler, tokens)
	router.SetupAdminRoutes(api, adminHandler, tokens)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	closeResources(db, rdb)

	logger.Info("Server stopped")
}

func closeResources(db *gorm.DB, rdb *redis.Client) {
	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Failed to close redis", "error", err)
	}
}
