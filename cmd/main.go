package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtside/league-system/config"
	"github.com/courtside/league-system/db"
	"github.com/courtside/league-system/handlers"
	"github.com/courtside/league-system/realtime"
	"github.com/courtside/league-system/repositories"
	"github.com/courtside/league-system/routes"
	"github.com/courtside/league-system/services"
	"github.com/courtside/league-system/storage"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	var archiver storage.SnapshotArchiver
	if cfg.ArchiveEnabled() {
		archiver, err = storage.NewCloudflareR2Archiver(storage.CloudflareR2ArchiverConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 archiver", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 archiver initialized")
	} else {
		logger.Info("snapshot archive disabled, R2 not configured")
	}

	wsHub := realtime.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	bracketRepo := repositories.NewPostgresBracketRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)

	bracketService := services.NewBracketService(bracketRepo, teamRepo, wsHub, logger)
	matchService := services.NewMatchService(bracketRepo, wsHub, archiver, logger)
	logger.Info("services initialized")

	bracketHandler := handlers.NewBracketHandler(bracketService, matchService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	router := routes.InitRoutes(routes.Config{
		BracketHandler:   bracketHandler,
		WebSocketHandler: webSocketHandler,
		JWTSecret:        cfg.JWTSecretKey,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
