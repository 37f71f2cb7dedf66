package repository

import (
	"context"

	"github.com/weather-microservice/internal/domain"
)

// NarrativeRepository - внешний генератор описаний погоды (LLM).
// Любая его ошибка гасится детерминированным fallback-описанием,
// наружу она не выходит.
type NarrativeRepository interface {
	// DescribeDrive описывает сводный отчёт о маршруте
	DescribeDrive(ctx context.Context, report *domain.ComfortReport, start, end *domain.Location) (string, error)

	// DescribeCurrent описывает текущую погоду в одной точке
	DescribeCurrent(ctx context.Context, obs *domain.CurrentObservation, location string) (string, error)

	// DescribeDaily описывает дневной прогноз
	DescribeDaily(ctx context.Context, observations []domain.DailyObservation, location string) (string, error)

	// DescribeHourly описывает часовой прогноз
	DescribeHourly(ctx context.Context, observations []domain.HourlyObservation, location string) (string, error)
}
