package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	"github.com/weather-microservice/internal/usecase/dto"
)

// ErrMalformedReport - сообщение стрима не разбирается в TripReport.
// Битое сообщение никогда не станет валидным, ретраить его бессмысленно.
var ErrMalformedReport = errors.New("malformed trip report")

// ReportArchiveUseCase - use case архива отчётов: воркер складывает
// отчёты из стрима в Postgres, API читает последние, ретенция чистит старые.
type ReportArchiveUseCase struct {
	reportRepo repository.ReportRepository
	logger     *zap.Logger
}

// NewReportArchiveUseCase - создание нового ReportArchiveUseCase
func NewReportArchiveUseCase(reportRepo repository.ReportRepository, logger *zap.Logger) *ReportArchiveUseCase {
	return &ReportArchiveUseCase{
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// ArchiveReport разбирает сообщение стрима и сохраняет отчёт.
// Ошибка разбора возвращается как ErrMalformedReport и не ретраится.
func (uc *ReportArchiveUseCase) ArchiveReport(ctx context.Context, payload string) error {
	var report domain.TripReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		uc.logger.Error("Failed to unmarshal trip report", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	if err := uc.reportRepo.Save(ctx, &report); err != nil {
		return err
	}

	uc.logger.Info("Trip report archived",
		zap.String("report_id", report.ID.String()),
		zap.Int("comfort_score", report.ComfortScore))
	return nil
}

// GetRecentReports возвращает последние сохранённые отчёты
func (uc *ReportArchiveUseCase) GetRecentReports(ctx context.Context, req dto.RecentReportsRequest) (*dto.RecentReportsResponse, error) {
	if req.Limit == 0 {
		req.Limit = 20
	}

	reports, err := uc.reportRepo.GetRecent(ctx, req.Limit)
	if err != nil {
		uc.logger.Error("Failed to get recent reports", zap.Error(err))
		return nil, err
	}

	return &dto.RecentReportsResponse{
		Reports: reports,
		Total:   len(reports),
	}, nil
}

// PruneOldReports удаляет отчёты старше периода ретенции
func (uc *ReportArchiveUseCase) PruneOldReports(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return uc.reportRepo.DeleteOlderThan(ctx, cutoff)
}
