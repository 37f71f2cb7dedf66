package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weather-microservice/internal/config"
	"github.com/weather-microservice/internal/pkg/logger"
	"github.com/weather-microservice/internal/repository/cache"
	"github.com/weather-microservice/internal/repository/postgres"
	redisRepo "github.com/weather-microservice/internal/repository/redis"
	"github.com/weather-microservice/internal/usecase"
	"github.com/weather-microservice/internal/worker"
	"github.com/weather-microservice/internal/worker/report"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Report Archive Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("retention", cfg.Worker.Retention),
		zap.Duration("prune_interval", cfg.Worker.PruneInterval))

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

	// 5. Initialize repositories
	reportRepo := postgres.NewReportRepository(db, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Ensure archive schema exists
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := reportRepo.EnsureSchema(schemaCtx); err != nil {
		schemaCancel()
		log.Fatal("Failed to ensure archive schema", zap.Error(err))
	}
	schemaCancel()

	// 7. Initialize use cases
	archiveUC := usecase.NewReportArchiveUseCase(reportRepo, log)

	// 8. Initialize workers
	archiverWorker := report.NewReportArchiverWorker(
		streamRepo,
		archiveUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	retentionWorker := report.NewRetentionWorker(
		archiveUC,
		cfg.Worker.Retention,
		cfg.Worker.PruneInterval,
		log,
	)

	// 9. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(archiverWorker)
	workerManager.Register(retentionWorker)

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
