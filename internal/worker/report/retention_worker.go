package report

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/weather-microservice/internal/usecase"
	"github.com/weather-microservice/internal/worker"
	"go.uber.org/zap"
)

// RetentionWorker периодически удаляет из архива отчёты старше
// периода ретенции.
type RetentionWorker struct {
	*worker.BaseWorker
	archiveUC *usecase.ReportArchiveUseCase
	retention time.Duration
	interval  time.Duration
	scheduler *gocron.Scheduler
}

// NewRetentionWorker создает новый RetentionWorker
func NewRetentionWorker(
	archiveUC *usecase.ReportArchiveUseCase,
	retention time.Duration,
	interval time.Duration,
	logger *zap.Logger,
) *RetentionWorker {
	return &RetentionWorker{
		BaseWorker: worker.NewBaseWorker("report-retention", "", logger),
		archiveUC:  archiveUC,
		retention:  retention,
		interval:   interval,
		scheduler:  gocron.NewScheduler(time.UTC),
	}
}

// Start запускает планировщик ретенции
func (w *RetentionWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RetentionWorker",
		zap.Duration("retention", w.retention),
		zap.Duration("interval", w.interval))

	_, err := w.scheduler.Every(w.interval).Do(func() {
		w.prune(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	w.scheduler.StartAsync()

	select {
	case <-w.StopChan():
		logger.Info("Worker stopped")
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	w.scheduler.Stop()
	return nil
}

func (w *RetentionWorker) prune(ctx context.Context) {
	logger := w.Logger()

	deleted, err := w.archiveUC.PruneOldReports(ctx, w.retention)
	if err != nil {
		logger.Error("Retention pruning failed", zap.Error(err))
		return
	}

	logger.Info("Retention pruning completed", zap.Int64("deleted", deleted))
}
