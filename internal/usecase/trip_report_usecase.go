package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	"github.com/weather-microservice/internal/pkg/errors"
	"github.com/weather-microservice/internal/usecase/dto"
)

// TripReportUseCase - use case для отчёта о погоде вдоль маршрута
// и текущей погоды в точке.
type TripReportUseCase struct {
	geocodingRepo  repository.GeocodingRepository
	directionsRepo repository.DirectionsRepository
	weatherRepo    repository.WeatherProviderRepository
	cacheRepo      repository.WeatherCacheRepository
	narrativeRepo  repository.NarrativeRepository
	streamRepo     repository.StreamRepository
	logger         *zap.Logger
	sampleInterval float64
}

// NewTripReportUseCase - создание нового TripReportUseCase
func NewTripReportUseCase(
	geocodingRepo repository.GeocodingRepository,
	directionsRepo repository.DirectionsRepository,
	weatherRepo repository.WeatherProviderRepository,
	cacheRepo repository.WeatherCacheRepository,
	narrativeRepo repository.NarrativeRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	sampleInterval float64,
) *TripReportUseCase {
	if sampleInterval <= 0 {
		sampleInterval = domain.DefaultSampleInterval
	}
	return &TripReportUseCase{
		geocodingRepo:  geocodingRepo,
		directionsRepo: directionsRepo,
		weatherRepo:    weatherRepo,
		cacheRepo:      cacheRepo,
		narrativeRepo:  narrativeRepo,
		streamRepo:     streamRepo,
		logger:         logger,
		sampleInterval: sampleInterval,
	}
}

// GetDrivingReport строит сводный отчёт о погоде вдоль маршрута между
// двумя адресами: геокодирует концы, прореживает маршрут, собирает
// текущую погоду в опорных точках и агрегирует её в один балл комфорта.
func (uc *TripReportUseCase) GetDrivingReport(ctx context.Context, req dto.DriveReportRequest) (*dto.DriveReportResponse, error) {
	start, err := uc.geocodingRepo.Geocode(ctx, req.StartAddress)
	if err != nil {
		uc.logger.Error("Failed to geocode start address",
			zap.String("address", req.StartAddress), zap.Error(err))
		return nil, err
	}

	end, err := uc.geocodingRepo.Geocode(ctx, req.EndAddress)
	if err != nil {
		uc.logger.Error("Failed to geocode end address",
			zap.String("address", req.EndAddress), zap.Error(err))
		return nil, err
	}

	polyline, err := uc.directionsRepo.GetRoute(ctx, start.Coordinate, end.Coordinate)
	if err != nil {
		uc.logger.Error("Failed to get route", zap.Error(err))
		return nil, err
	}

	points, err := domain.SampleRoute(polyline, uc.sampleInterval, true)
	if err != nil {
		return nil, err
	}

	observations := uc.collectCurrent(ctx, points)
	if len(observations) == 0 {
		uc.logger.Error("No weather observations collected for route",
			zap.Int("sample_points", len(points)))
		return nil, errors.ErrUpstreamFetchFailed
	}

	report, err := domain.AggregateCurrent(observations)
	if err != nil {
		return nil, err
	}

	// Описание от LLM; при любой его ошибке остаётся детерминированный fallback
	if description, err := uc.narrativeRepo.DescribeDrive(ctx, report, start, end); err != nil {
		uc.logger.Warn("Narrative generation failed, using fallback description", zap.Error(err))
	} else {
		report.Description = description
	}

	conditions := uniqueConditions(observations)

	tripReport := &domain.TripReport{
		ID:            uuid.New(),
		StartAddress:  start.DisplayName,
		EndAddress:    end.DisplayName,
		StartLat:      start.Lat,
		StartLon:      start.Lon,
		EndLat:        end.Lat,
		EndLon:        end.Lon,
		SamplePoints:  len(points),
		MaxPrecip:     report.MaxPrecip,
		MeanTemp:      report.MeanTemp,
		MaxGust:       report.MaxGust,
		MinVisibility: report.MinVisibility,
		IsDay:         report.IsDay,
		ComfortScore:  report.ComfortScore,
		Description:   report.Description,
		Conditions:    conditions,
		CreatedAt:     time.Now().UTC(),
	}

	// Публикация в стрим не должна валить запрос: архив догонит позже
	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamWeatherReports, tripReport); err != nil {
			uc.logger.Warn("Failed to publish trip report to stream",
				zap.String("report_id", tripReport.ID.String()), zap.Error(err))
		}
	}

	return &dto.DriveReportResponse{
		ReportID:      tripReport.ID.String(),
		Start:         dto.NewLocationDTO(start),
		End:           dto.NewLocationDTO(end),
		SamplePoints:  len(points),
		MaxPrecip:     report.MaxPrecip,
		MeanTemp:      report.MeanTemp,
		MaxGust:       report.MaxGust,
		MinVisibility: report.MinVisibility,
		IsDay:         report.IsDay,
		ComfortScore:  report.ComfortScore,
		Description:   report.Description,
		Conditions:    conditions,
	}, nil
}

// GetCurrentReport возвращает текущую погоду и балл комфорта в одной точке
func (uc *TripReportUseCase) GetCurrentReport(ctx context.Context, req dto.CurrentWeatherRequest) (*dto.CurrentWeatherResponse, error) {
	location, err := uc.geocodingRepo.Geocode(ctx, req.Address)
	if err != nil {
		uc.logger.Error("Failed to geocode address",
			zap.String("address", req.Address), zap.Error(err))
		return nil, err
	}

	key := domain.KindCurrent.CacheKey(location.Coordinate, time.Time{})
	obs := uc.lookupCurrent(ctx, key)
	if obs == nil {
		obs, err = uc.weatherRepo.FetchCurrent(ctx, location.Coordinate)
		if err != nil {
			uc.logger.Error("Failed to fetch current weather", zap.Error(err))
			return nil, err
		}
		uc.storeCurrent(ctx, key, obs)
	}

	report, err := domain.AggregateCurrent([]domain.CurrentObservation{*obs})
	if err != nil {
		return nil, err
	}

	if description, err := uc.narrativeRepo.DescribeCurrent(ctx, obs, locationName(location)); err != nil {
		uc.logger.Warn("Narrative generation failed, using fallback description", zap.Error(err))
	} else {
		report.Description = description
	}

	return &dto.CurrentWeatherResponse{
		Location:     dto.NewLocationDTO(location),
		Observation:  obs,
		ComfortScore: report.ComfortScore,
		Description:  report.Description,
	}, nil
}

// collectCurrent собирает текущую погоду в опорных точках маршрута
// по схеме cache-aside. Отдельные неудачные точки пропускаются,
// отчёт строится по тем, что удалось получить.
func (uc *TripReportUseCase) collectCurrent(ctx context.Context, points []domain.SamplePoint) []domain.CurrentObservation {
	observations := make([]domain.CurrentObservation, 0, len(points))

	for _, point := range points {
		if obs := uc.lookupCurrent(ctx, point.CacheKey); obs != nil {
			observations = append(observations, *obs)
			continue
		}

		obs, err := uc.weatherRepo.FetchCurrent(ctx, point.Coordinate)
		if err != nil {
			uc.logger.Warn("Skipping sample point after fetch failure",
				zap.Float64("lat", point.Lat),
				zap.Float64("lon", point.Lon),
				zap.Error(err))
			continue
		}

		uc.storeCurrent(ctx, point.CacheKey, obs)
		observations = append(observations, *obs)
	}

	return observations
}

// lookupCurrent читает наблюдение из кеша; любая ошибка кеша - это промах
func (uc *TripReportUseCase) lookupCurrent(ctx context.Context, key string) *domain.CurrentObservation {
	obs, err := uc.cacheRepo.GetCurrent(ctx, key)
	if err != nil {
		uc.logger.Warn("Cache lookup failed, treating as miss",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return obs
}

func (uc *TripReportUseCase) storeCurrent(ctx context.Context, key string, obs *domain.CurrentObservation) {
	if err := uc.cacheRepo.PutCurrent(ctx, key, obs); err != nil {
		uc.logger.Warn("Failed to cache observation",
			zap.String("key", key), zap.Error(err))
	}
}

// uniqueConditions возвращает уникальные погодные условия в порядке встречи
func uniqueConditions(observations []domain.CurrentObservation) []string {
	seen := make(map[string]struct{}, len(observations))
	conditions := make([]string, 0, len(observations))
	for _, obs := range observations {
		if obs.Condition == "" {
			continue
		}
		if _, ok := seen[obs.Condition]; ok {
			continue
		}
		seen[obs.Condition] = struct{}{}
		conditions = append(conditions, obs.Condition)
	}
	return conditions
}

// locationName - "{city}, {state}" либо полное имя, если частей нет
func locationName(loc *domain.Location) string {
	if loc.City != "" && loc.State != "" {
		return loc.City + ", " + loc.State
	}
	return loc.DisplayName
}
