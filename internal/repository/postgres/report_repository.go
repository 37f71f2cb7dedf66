package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type reportRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewReportRepository создает новый экземпляр report repository
func NewReportRepository(db *DB, logger *zap.Logger) repository.ReportRepository {
	return &reportRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema создает таблицу отчётов, если её ещё нет.
// Вызывается воркером при старте.
func (r *reportRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS trip_reports (
			id             UUID PRIMARY KEY,
			start_address  TEXT NOT NULL,
			end_address    TEXT NOT NULL,
			start_lat      DOUBLE PRECISION NOT NULL,
			start_lon      DOUBLE PRECISION NOT NULL,
			end_lat        DOUBLE PRECISION NOT NULL,
			end_lon        DOUBLE PRECISION NOT NULL,
			sample_points  INTEGER NOT NULL,
			max_precip     DOUBLE PRECISION NOT NULL,
			mean_temp      DOUBLE PRECISION NOT NULL,
			max_gust       DOUBLE PRECISION NOT NULL,
			min_visibility DOUBLE PRECISION NOT NULL,
			is_day         BOOLEAN NOT NULL,
			comfort_score  INTEGER NOT NULL,
			description    TEXT NOT NULL,
			conditions     TEXT[] NOT NULL DEFAULT '{}',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_trip_reports_created_at ON trip_reports (created_at DESC);
	`

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		r.logger.Error("failed to ensure trip_reports schema", zap.Error(err))
		return fmt.Errorf("ensure trip_reports schema: %w", err)
	}
	return nil
}

// Save сохраняет отчёт. Повторная доставка того же сообщения из стрима
// не должна плодить дубликаты, поэтому ON CONFLICT DO NOTHING.
func (r *reportRepository) Save(ctx context.Context, report *domain.TripReport) error {
	const query = `
		INSERT INTO trip_reports (
			id, start_address, end_address,
			start_lat, start_lon, end_lat, end_lon,
			sample_points, max_precip, mean_temp, max_gust, min_visibility,
			is_day, comfort_score, description, conditions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.StartAddress,
		report.EndAddress,
		report.StartLat,
		report.StartLon,
		report.EndLat,
		report.EndLon,
		report.SamplePoints,
		report.MaxPrecip,
		report.MeanTemp,
		report.MaxGust,
		report.MinVisibility,
		report.IsDay,
		report.ComfortScore,
		report.Description,
		pq.Array(report.Conditions),
		report.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to save trip report",
			zap.String("report_id", report.ID.String()),
			zap.Error(err))
		return fmt.Errorf("save trip report: %w", err)
	}

	return nil
}

// GetRecent возвращает последние отчёты в порядке убывания created_at
func (r *reportRepository) GetRecent(ctx context.Context, limit int) ([]domain.TripReport, error) {
	const query = `
		SELECT id, start_address, end_address,
		       start_lat, start_lon, end_lat, end_lon,
		       sample_points, max_precip, mean_temp, max_gust, min_visibility,
		       is_day, comfort_score, description, created_at
		FROM trip_reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	var reports []domain.TripReport
	if err := r.db.SelectContext(ctx, &reports, query, limit); err != nil {
		r.logger.Error("failed to get recent trip reports", zap.Error(err))
		return nil, fmt.Errorf("get recent trip reports: %w", err)
	}

	// conditions выбираем отдельно: sqlx не сканирует TEXT[] в []string напрямую
	for i := range reports {
		var conditions pq.StringArray
		err := r.db.QueryRowContext(ctx,
			`SELECT conditions FROM trip_reports WHERE id = $1`,
			reports[i].ID,
		).Scan(&conditions)
		if err != nil {
			r.logger.Error("failed to get report conditions",
				zap.String("report_id", reports[i].ID.String()),
				zap.Error(err))
			return nil, fmt.Errorf("get report conditions: %w", err)
		}
		reports[i].Conditions = conditions
	}

	return reports, nil
}

// DeleteOlderThan удаляет отчёты старше отметки, возвращает число удалённых
func (r *reportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trip_reports WHERE created_at < $1`, cutoff)
	if err != nil {
		r.logger.Error("failed to prune trip reports", zap.Error(err))
		return 0, fmt.Errorf("prune trip reports: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune trip reports: %w", err)
	}

	if deleted > 0 {
		r.logger.Info("Pruned old trip reports",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return deleted, nil
}
