package repository

import (
	"context"
	"time"

	"github.com/weather-microservice/internal/domain"
)

// ReportRepository - архив отчётов о маршрутах в Postgres
type ReportRepository interface {
	// EnsureSchema создает таблицу отчётов, если её ещё нет
	EnsureSchema(ctx context.Context) error

	// Save сохраняет отчёт; повторная доставка того же ID игнорируется
	Save(ctx context.Context, report *domain.TripReport) error

	// GetRecent возвращает последние отчёты, новые первыми
	GetRecent(ctx context.Context, limit int) ([]domain.TripReport, error)

	// DeleteOlderThan удаляет отчёты старше порога, возвращает число удалённых
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
