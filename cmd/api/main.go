package main

// @title Weather Trip Report API
// @version 1.0.0
// @description Микросервис погодных отчётов для автомобильных поездок. Строит маршрут между двумя адресами, прореживает его на опорные точки, собирает текущую погоду вдоль маршрута и агрегирует её в единый балл комфорта поездки.
// @description
// @description Основные возможности:
// @description - Отчёт о погоде вдоль маршрута с баллом комфорта (0-100)
// @description - Текущая погода, дневной и часовой прогнозы по адресу
// @description - Геохеш-кеширование погодных данных с TTL по виду отчёта
// @description - Архив отчётов о поездках с выборкой последних

// @contact.name API Support
// @contact.email support@weather-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/weather-microservice/docs"
	"github.com/weather-microservice/internal/config"
	httpDelivery "github.com/weather-microservice/internal/delivery/http"
	"github.com/weather-microservice/internal/delivery/http/handler"
	"github.com/weather-microservice/internal/infrastructure/locationiq"
	"github.com/weather-microservice/internal/infrastructure/openmeteo"
	"github.com/weather-microservice/internal/infrastructure/openroute"
	"github.com/weather-microservice/internal/infrastructure/openrouter"
	"github.com/weather-microservice/internal/pkg/logger"
	"github.com/weather-microservice/internal/repository/cache"
	"github.com/weather-microservice/internal/repository/postgres"
	redisRepo "github.com/weather-microservice/internal/repository/redis"
	"github.com/weather-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Weather Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories and provider clients
	cacheRepo := cache.NewWeatherCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	reportRepo := postgres.NewReportRepository(db, log)

	geocodingRepo := locationiq.NewClient(&cfg.Geocoding, log)
	directionsRepo := openroute.NewClient(&cfg.Directions, log)
	weatherRepo := openmeteo.NewClient(&cfg.Weather, log)
	narrativeRepo := openrouter.NewClient(&cfg.Narrative, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	tripReportUC := usecase.NewTripReportUseCase(
		geocodingRepo,
		directionsRepo,
		weatherRepo,
		cacheRepo,
		narrativeRepo,
		streamRepo,
		log,
		cfg.Route.SampleIntervalMeters,
	)

	forecastUC := usecase.NewForecastUseCase(
		geocodingRepo,
		weatherRepo,
		cacheRepo,
		narrativeRepo,
		log,
	)

	archiveUC := usecase.NewReportArchiveUseCase(reportRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	weatherHandler := handler.NewWeatherHandler(tripReportUC, forecastUC, log)
	reportHandler := handler.NewReportHandler(archiveUC, log)

	healthHandler := handler.NewHealthHandler(log)
	healthHandler.Register("postgres", db)
	healthHandler.Register("redis", redisClient)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		weatherHandler,
		reportHandler,
		healthHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
