package repository

import (
	"context"

	"github.com/weather-microservice/internal/domain"
)

// WeatherProviderRepository - интерфейс погодного провайдера.
// Прогнозные методы возвращают полный доступный горизонт (7 дней / 24 часа),
// чтобы вызывающий код мог закешировать корзины впрок.
type WeatherProviderRepository interface {
	// FetchCurrent возвращает текущую погоду в точке
	FetchCurrent(ctx context.Context, c domain.Coordinate) (*domain.CurrentObservation, error)

	// FetchDaily возвращает дневной прогноз для точки
	FetchDaily(ctx context.Context, c domain.Coordinate) ([]domain.DailyObservation, error)

	// FetchHourly возвращает часовой прогноз для точки
	FetchHourly(ctx context.Context, c domain.Coordinate) ([]domain.HourlyObservation, error)
}
