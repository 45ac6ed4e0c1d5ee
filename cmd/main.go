package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"registry-service/internal/handler"
	"registry-service/internal/middleware"
	"registry-service/pkg/config"
	"registry-service/pkg/database"
	"registry-service/pkg/logger"
	"registry-service/pkg/session"
	"registry-service/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting registry service...", cfg.LogConfig()...)

	// Initialize database (PostgreSQL, or embedded SQLite when no
	// DATABASE_URL is set) and seed the bootstrap account
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize session signing
	session.Initialize(&cfg.Session)

	// Initialize handler collaborators: CAPTCHA client, upload store,
	// wizard slot store
	if err := handler.Init(cfg); err != nil {
		log.Fatal("Failed to initialize handlers", zap.Error(err))
	}

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(cfg.Upload.MaxSize))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	handler.RegisterRoutes(e)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
