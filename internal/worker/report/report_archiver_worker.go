package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	"github.com/weather-microservice/internal/usecase"
	"github.com/weather-microservice/internal/worker"
	"go.uber.org/zap"
)

// retryDelay - пауза между попытками сохранить один отчёт
const retryDelay = time.Second

// ReportArchiverWorker читает готовые отчёты из Redis Stream
// и складывает их в Postgres.
type ReportArchiverWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	archiveUC    *usecase.ReportArchiveUseCase
	consumerName string
	maxRetries   int
}

// NewReportArchiverWorker создает новый ReportArchiverWorker
func NewReportArchiverWorker(
	streamRepo repository.StreamRepository,
	archiveUC *usecase.ReportArchiveUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *ReportArchiverWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &ReportArchiverWorker{
		BaseWorker:   worker.NewBaseWorker("report-archiver", consumerGroup, logger),
		streamRepo:   streamRepo,
		archiveUC:    archiveUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *ReportArchiverWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ReportArchiverWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamWeatherReports, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	msgChan, err := w.streamRepo.ConsumeStream(ctx, domain.StreamWeatherReports, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		logger.Error("Failed to start stream consumer", zap.Error(err))
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.processMessage(ctx, msg)
		}
	}
}

// processMessage сохраняет отчёт с повторами. Нечитаемое сообщение
// не ретраится, а после исчерпания попыток сообщение подтверждается,
// чтобы не стопорить очередь.
func (w *ReportArchiverWorker) processMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		lastErr = w.archiveUC.ArchiveReport(ctx, msg.Data)
		if lastErr == nil {
			break
		}

		logger.Warn("Failed to archive report",
			zap.String("message_id", msg.ID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if errors.Is(lastErr, usecase.ErrMalformedReport) {
			break
		}

		if attempt < w.maxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
		}
	}

	if lastErr != nil {
		logger.Error("Dropping report after retries exhausted",
			zap.String("message_id", msg.ID),
			zap.Error(lastErr))
	}

	if err := w.streamRepo.AckMessage(ctx, domain.StreamWeatherReports, w.ConsumerGroup(), msg.ID); err != nil {
		logger.Error("Failed to ack message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
	}
}
