package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/connect"
	"github.com/railbook/railbook/internal/container"
	"github.com/railbook/railbook/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting RailBook API server", "environment", cfg.Environment)

	// Initialize database connections
	mongoClient, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully")

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := connect.EnsureIndexes(indexCtx, mongoClient); err != nil {
		cancelIndex()
		logger.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}
	cancelIndex()

	redisClient, err := connect.RedisConnect(cfg.RedisAddr)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		logger.Info("Connected to Redis successfully")
	}

	// Initialize dependency container
	appContainer := container.NewContainer(logger, cfg, mongoClient, redisClient)

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close database connections
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error disconnecting from Redis", "error", err)
		}
	}
	if err := connect.MongoDBDisconnect(); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
