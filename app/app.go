// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vidtube-api/config"
	"vidtube-api/db"
	"vidtube-api/handler"
	"vidtube-api/logger"
	"vidtube-api/repository"
	"vidtube-api/router"
	"vidtube-api/service"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := service.NewS3MediaUploader()
	if err != nil {
		logger.Log.Fatalf("Error configuring media storage: %v", err)
	}

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)
	channelRepo := repository.NewChannelRepository(database)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, channelRepo, redisClient)

	userHandler := handler.NewUserHandler(authService, userService, uploader)
	channelHandler := handler.NewChannelHandler(userService)

	r := router.NewRouter(userHandler, channelHandler, userRepo)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// TestApp wires the full router against externally managed dependencies so
// integration tests can drive it with httptest.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client, uploader service.IMediaUploader) *TestApp {
	userRepo := repository.NewUserRepository(database)
	channelRepo := repository.NewChannelRepository(database)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, channelRepo, redisClient)

	userHandler := handler.NewUserHandler(authService, userService, uploader)
	channelHandler := handler.NewChannelHandler(userService)

	return &TestApp{
		DB:     database,
		Router: router.NewRouter(userHandler, channelHandler, userRepo),
	}
}
