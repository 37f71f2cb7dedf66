package repository

import (
	"context"

	"github.com/weather-microservice/internal/domain"
)

// WeatherCacheRepository - kind-aware кеш погодных наблюдений.
// Реализации: Redis и in-memory двойник для тестов и деплоя без кеша.
// Промах возвращается как (nil, nil); ошибка бекенда - как CacheUnavailable,
// вызывающий код обязан трактовать её как промах и идти к провайдеру.
type WeatherCacheRepository interface {
	// Has проверяет существование ключа
	Has(ctx context.Context, key string) (bool, error)

	// Get получает сырое значение по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Put сохраняет значение с TTL, определяемым видом отчёта
	Put(ctx context.Context, key string, value []byte, kind domain.ReportKind) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetCurrent получает текущее наблюдение
	GetCurrent(ctx context.Context, key string) (*domain.CurrentObservation, error)

	// PutCurrent сохраняет текущее наблюдение
	PutCurrent(ctx context.Context, key string, obs *domain.CurrentObservation) error

	// GetDaily получает дневное наблюдение
	GetDaily(ctx context.Context, key string) (*domain.DailyObservation, error)

	// PutDaily сохраняет дневное наблюдение
	PutDaily(ctx context.Context, key string, obs *domain.DailyObservation) error

	// GetHourly получает часовое наблюдение
	GetHourly(ctx context.Context, key string) (*domain.HourlyObservation, error)

	// PutHourly сохраняет часовое наблюдение
	PutHourly(ctx context.Context, key string, obs *domain.HourlyObservation) error
}
