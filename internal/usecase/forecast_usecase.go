package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	"github.com/weather-microservice/internal/pkg/errors"
	"github.com/weather-microservice/internal/usecase/dto"
)

// ForecastUseCase - use case для дневного и часового прогнозов.
// Корзины кешируются по отдельности: один запрос к провайдеру тянет
// полный горизонт и наполняет кеш впрок.
type ForecastUseCase struct {
	geocodingRepo repository.GeocodingRepository
	weatherRepo   repository.WeatherProviderRepository
	cacheRepo     repository.WeatherCacheRepository
	narrativeRepo repository.NarrativeRepository
	logger        *zap.Logger

	// подменяется в тестах
	now func() time.Time
}

// NewForecastUseCase - создание нового ForecastUseCase
func NewForecastUseCase(
	geocodingRepo repository.GeocodingRepository,
	weatherRepo repository.WeatherProviderRepository,
	cacheRepo repository.WeatherCacheRepository,
	narrativeRepo repository.NarrativeRepository,
	logger *zap.Logger,
) *ForecastUseCase {
	return &ForecastUseCase{
		geocodingRepo: geocodingRepo,
		weatherRepo:   weatherRepo,
		cacheRepo:     cacheRepo,
		narrativeRepo: narrativeRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// SetClock подменяет источник времени (для тестов)
func (uc *ForecastUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// GetDailyForecast возвращает прогноз на 1..7 дней начиная с сегодняшнего
func (uc *ForecastUseCase) GetDailyForecast(ctx context.Context, req dto.DailyForecastRequest) (*dto.DailyForecastResponse, error) {
	if req.Days == 0 {
		req.Days = 1
	}
	if req.Days < 1 || req.Days > domain.ForecastDays {
		return nil, errors.ErrInvalidForecastRange
	}

	location, err := uc.geocodingRepo.Geocode(ctx, req.Address)
	if err != nil {
		uc.logger.Error("Failed to geocode address",
			zap.String("address", req.Address), zap.Error(err))
		return nil, err
	}

	days := make([]domain.DailyObservation, 0, req.Days)
	var fetched map[string]domain.DailyObservation

	today := uc.now()
	for offset := 0; offset < req.Days; offset++ {
		date := today.AddDate(0, 0, offset)
		key := domain.KindDaily.CacheKey(location.Coordinate, date)

		obs, err := uc.cacheRepo.GetDaily(ctx, key)
		if err != nil {
			uc.logger.Warn("Cache lookup failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		if obs != nil {
			days = append(days, *obs)
			continue
		}

		// Первый промах: тянем весь горизонт и кешируем каждую корзину
		if fetched == nil {
			fetched, err = uc.fetchAndCacheDaily(ctx, location.Coordinate)
			if err != nil {
				return nil, err
			}
		}

		if day, ok := fetched[date.Format(domain.DailyBucketLayout)]; ok {
			days = append(days, day)
		}
	}

	if len(days) == 0 {
		return nil, errors.ErrUpstreamFetchFailed
	}

	name := locationName(location)
	description, err := uc.narrativeRepo.DescribeDaily(ctx, days, name)
	if err != nil {
		uc.logger.Warn("Narrative generation failed, using fallback description", zap.Error(err))
		description = domain.FallbackDailyDescription(days, name)
	}

	return &dto.DailyForecastResponse{
		Location:    dto.NewLocationDTO(location),
		Days:        days,
		Description: description,
	}, nil
}

// GetHourlyForecast возвращает прогноз на 1..24 часа начиная с текущего
func (uc *ForecastUseCase) GetHourlyForecast(ctx context.Context, req dto.HourlyForecastRequest) (*dto.HourlyForecastResponse, error) {
	if req.Hours == 0 {
		req.Hours = 1
	}
	if req.Hours < 1 || req.Hours > domain.ForecastHours {
		return nil, errors.ErrInvalidForecastRange
	}

	location, err := uc.geocodingRepo.Geocode(ctx, req.Address)
	if err != nil {
		uc.logger.Error("Failed to geocode address",
			zap.String("address", req.Address), zap.Error(err))
		return nil, err
	}

	hours := make([]domain.HourlyObservation, 0, req.Hours)
	var fetched map[string]domain.HourlyObservation

	start := uc.now()
	for offset := 0; offset < req.Hours; offset++ {
		hour := start.Add(time.Duration(offset) * time.Hour)
		key := domain.KindHourly.CacheKey(location.Coordinate, hour)

		obs, err := uc.cacheRepo.GetHourly(ctx, key)
		if err != nil {
			uc.logger.Warn("Cache lookup failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		if obs != nil {
			hours = append(hours, *obs)
			continue
		}

		if fetched == nil {
			fetched, err = uc.fetchAndCacheHourly(ctx, location.Coordinate)
			if err != nil {
				return nil, err
			}
		}

		if h, ok := fetched[hour.Format(domain.HourlyBucketLayout)]; ok {
			hours = append(hours, h)
		}
	}

	if len(hours) == 0 {
		return nil, errors.ErrUpstreamFetchFailed
	}

	name := locationName(location)
	description, err := uc.narrativeRepo.DescribeHourly(ctx, hours, name)
	if err != nil {
		uc.logger.Warn("Narrative generation failed, using fallback description", zap.Error(err))
		description = domain.FallbackHourlyDescription(hours, name)
	}

	return &dto.HourlyForecastResponse{
		Location:    dto.NewLocationDTO(location),
		Hours:       hours,
		Description: description,
	}, nil
}

// fetchAndCacheDaily тянет недельный прогноз и раскладывает его по корзинам
func (uc *ForecastUseCase) fetchAndCacheDaily(ctx context.Context, coord domain.Coordinate) (map[string]domain.DailyObservation, error) {
	observations, err := uc.weatherRepo.FetchDaily(ctx, coord)
	if err != nil {
		uc.logger.Error("Failed to fetch daily forecast", zap.Error(err))
		return nil, err
	}

	fetched := make(map[string]domain.DailyObservation, len(observations))
	for _, obs := range observations {
		fetched[obs.Date] = obs

		date, err := time.Parse(domain.DailyBucketLayout, obs.Date)
		if err != nil {
			continue
		}
		key := domain.KindDaily.CacheKey(coord, date)
		day := obs
		if err := uc.cacheRepo.PutDaily(ctx, key, &day); err != nil {
			uc.logger.Warn("Failed to cache daily observation",
				zap.String("key", key), zap.Error(err))
		}
	}
	return fetched, nil
}

// fetchAndCacheHourly тянет суточный прогноз и раскладывает его по корзинам
func (uc *ForecastUseCase) fetchAndCacheHourly(ctx context.Context, coord domain.Coordinate) (map[string]domain.HourlyObservation, error) {
	observations, err := uc.weatherRepo.FetchHourly(ctx, coord)
	if err != nil {
		uc.logger.Error("Failed to fetch hourly forecast", zap.Error(err))
		return nil, err
	}

	fetched := make(map[string]domain.HourlyObservation, len(observations))
	for _, obs := range observations {
		fetched[obs.DateHour] = obs

		hour, err := time.Parse(domain.HourlyBucketLayout, obs.DateHour)
		if err != nil {
			continue
		}
		key := domain.KindHourly.CacheKey(coord, hour)
		h := obs
		if err := uc.cacheRepo.PutHourly(ctx, key, &h); err != nil {
			uc.logger.Warn("Failed to cache hourly observation",
				zap.String("key", key), zap.Error(err))
		}
	}
	return fetched, nil
}
