package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/parkcast/parkcast-go/internal/api"
	"github.com/parkcast/parkcast-go/internal/api/handlers"
	"github.com/parkcast/parkcast-go/internal/config"
	"github.com/parkcast/parkcast-go/internal/database"
	"github.com/parkcast/parkcast-go/internal/datastore"
	"github.com/parkcast/parkcast-go/internal/services"
	"github.com/parkcast/parkcast-go/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg)

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.InitTelemetry(ctx, cfg.Telemetry, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Telemetry shutdown failed")
		}
	}()

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redis, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redis.Close()

	// Read-only collaborators the engine consumes.
	registry := datastore.NewPostgresLotRegistry(db.Pool)
	eventSource := datastore.NewPostgresEventSource(db.Pool)
	historical := datastore.NewPostgresHistoricalReportStore(db.Pool)
	realtime := datastore.NewRedisRealtimeReportStore(redis.Client)
	crossLot := datastore.NewRedisCrossLotSnapshot(redis.Client)
	weather := datastore.NewWeatherClient(&cfg.Weather)

	forest, err := services.LoadForest(cfg.Prediction.ForestPath)
	if err != nil {
		return fmt.Errorf("failed to load prediction model: %w", err)
	}
	gbModel, err := services.NewGradientBoostedModel(forest)
	if err != nil {
		return fmt.Errorf("invalid prediction model: %w", err)
	}

	extractor := services.NewFeatureExtractor(registry, eventSource, historical, realtime, weather, crossLot, cfg.Prediction, logger)
	combiner := services.NewEnsembleCombiner(cfg.Prediction.GradientBoostedWeight, cfg.Prediction.SeasonalWeight)
	predictionService := services.NewPredictionService(extractor, gbModel, combiner, cfg.Prediction, logger)

	logger.WithFields(logrus.Fields{
		"model_version": predictionService.ModelVersion(),
		"environment":   cfg.Environment,
	}).Info("Prediction engine initialized")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	predictionHandler := handlers.NewPredictionHandler(predictionService, registry, logger)
	healthHandler := handlers.NewHealthHandler(db, redis, cfg.Telemetry.ServiceVersion, logger)
	api.SetupRoutes(router, predictionHandler, healthHandler, cfg.Telemetry.ServiceName, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
