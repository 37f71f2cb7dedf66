package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	apperrors "github.com/weather-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// Имя поля хеша, под которым лежит сериализованное наблюдение.
const weatherDataField = "weather_data"

type weatherCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewWeatherCacheRepository создает Redis-реализацию погодного кеша.
// Значение хранится в хеш-поле weather_data, TTL ставится на весь ключ.
func NewWeatherCacheRepository(redis *Redis) repository.WeatherCacheRepository {
	return &weatherCacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *weatherCacheRepository) Has(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("%w: exists %q: %v", apperrors.ErrCacheUnavailable, key, err)
	}

	return val > 0, nil
}

func (r *weatherCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.HGet(ctx, key, weatherDataField).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: get %q: %v", apperrors.ErrCacheUnavailable, key, err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *weatherCacheRepository) Put(ctx context.Context, key string, value []byte, kind domain.ReportKind) error {
	if err := r.client.HSet(ctx, key, weatherDataField, value).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: put %q: %v", apperrors.ErrCacheUnavailable, key, err)
	}

	ttl := kind.TTL()
	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache TTL", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: expire %q: %v", apperrors.ErrCacheUnavailable, key, err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *weatherCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: delete %q: %v", apperrors.ErrCacheUnavailable, key, err)
	}

	return nil
}

func (r *weatherCacheRepository) GetCurrent(ctx context.Context, key string) (*domain.CurrentObservation, error) {
	var obs domain.CurrentObservation
	ok, err := r.getJSON(ctx, key, &obs)
	if err != nil || !ok {
		return nil, err
	}
	return &obs, nil
}

func (r *weatherCacheRepository) PutCurrent(ctx context.Context, key string, obs *domain.CurrentObservation) error {
	return r.putJSON(ctx, key, obs, domain.KindCurrent)
}

func (r *weatherCacheRepository) GetDaily(ctx context.Context, key string) (*domain.DailyObservation, error) {
	var obs domain.DailyObservation
	ok, err := r.getJSON(ctx, key, &obs)
	if err != nil || !ok {
		return nil, err
	}
	return &obs, nil
}

func (r *weatherCacheRepository) PutDaily(ctx context.Context, key string, obs *domain.DailyObservation) error {
	return r.putJSON(ctx, key, obs, domain.KindDaily)
}

func (r *weatherCacheRepository) GetHourly(ctx context.Context, key string) (*domain.HourlyObservation, error) {
	var obs domain.HourlyObservation
	ok, err := r.getJSON(ctx, key, &obs)
	if err != nil || !ok {
		return nil, err
	}
	return &obs, nil
}

func (r *weatherCacheRepository) PutHourly(ctx context.Context, key string, obs *domain.HourlyObservation) error {
	return r.putJSON(ctx, key, obs, domain.KindHourly)
}

func (r *weatherCacheRepository) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil // Cache miss
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Битая запись равносильна промаху: перезапишется свежими данными
		r.logger.Warn("Failed to unmarshal cached observation", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *weatherCacheRepository) putJSON(ctx context.Context, key string, obs interface{}, kind domain.ReportKind) error {
	data, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshal observation: %w", err)
	}
	return r.Put(ctx, key, data, kind)
}
