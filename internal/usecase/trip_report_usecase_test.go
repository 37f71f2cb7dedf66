package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/pkg/errors"
	"github.com/weather-microservice/internal/repository/cache"
	"github.com/weather-microservice/internal/usecase"
	"github.com/weather-microservice/internal/usecase/dto"
)

var (
	barcelona = domain.Coordinate{Lat: 41.3851, Lon: 2.1734}
	madrid    = domain.Coordinate{Lat: 40.4168, Lon: -3.7038}
)

func barcelonaLocation() *domain.Location {
	return &domain.Location{
		Coordinate:  barcelona,
		DisplayName: "Barcelona, Catalonia, Spain",
		City:        "Barcelona",
		State:       "Catalonia",
	}
}

func madridLocation() *domain.Location {
	return &domain.Location{
		Coordinate:  madrid,
		DisplayName: "Madrid, Community of Madrid, Spain",
		City:        "Madrid",
		State:       "Community of Madrid",
	}
}

func mildObservation() *domain.CurrentObservation {
	return &domain.CurrentObservation{
		ApparentTemp:  22.0,
		Precipitation: 0.0,
		Condition:     "Clear sky",
		IsDay:         true,
		WindGusts:     5.0,
		Visibility:    9000,
	}
}

func newTripReportUseCase(
	geocoding *MockGeocodingRepository,
	directions *MockDirectionsRepository,
	weather *MockWeatherProviderRepository,
	narrative *MockNarrativeRepository,
	stream *MockStreamRepository,
) (*usecase.TripReportUseCase, *cache.MemoryCacheRepository) {
	memCache := cache.NewMemoryCacheRepository()
	uc := usecase.NewTripReportUseCase(
		geocoding, directions, weather, memCache, narrative, stream,
		zap.NewNop(), domain.DefaultSampleInterval,
	)
	return uc, memCache
}

func TestTripReportUseCase_GetDrivingReport(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockGeo.On("Geocode", ctx, "Madrid").Return(madridLocation(), nil)
	mockDir.On("GetRoute", ctx, barcelona, madrid).
		Return(domain.RoutePolyline{barcelona, madrid}, nil)

	// Единственный сегмент длиннее интервала: опорные точки - старт,
	// конец по накоплению и конец ещё раз из-за includeEnd
	mockWeather.On("FetchCurrent", ctx, barcelona).Return(mildObservation(), nil).Once()
	mockWeather.On("FetchCurrent", ctx, madrid).Return(mildObservation(), nil).Once()

	mockNarrative.On("DescribeDrive", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("Smooth sailing all the way to Madrid.", nil)
	mockStream.On("PublishToStream", ctx, domain.StreamWeatherReports, mock.Anything).Return(nil)

	resp, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Barcelona",
		EndAddress:   "Madrid",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ReportID)
	assert.Equal(t, "Barcelona, Catalonia, Spain", resp.Start.DisplayName)
	assert.Equal(t, "Madrid, Community of Madrid, Spain", resp.End.DisplayName)
	assert.Equal(t, 3, resp.SamplePoints)
	assert.Equal(t, 100, resp.ComfortScore)
	assert.True(t, resp.IsDay)
	assert.Equal(t, "Smooth sailing all the way to Madrid.", resp.Description)
	assert.Equal(t, []string{"Clear sky"}, resp.Conditions)

	mockWeather.AssertExpectations(t)
	mockStream.AssertExpectations(t)
}

func TestTripReportUseCase_GetDrivingReport_CacheHit(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, memCache := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	// Наблюдения уже в кеше: к провайдеру ходить не нужно
	for _, coord := range []domain.Coordinate{barcelona, madrid} {
		key := domain.KindCurrent.CacheKey(coord, time.Time{})
		require.NoError(t, memCache.PutCurrent(ctx, key, mildObservation()))
	}

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockGeo.On("Geocode", ctx, "Madrid").Return(madridLocation(), nil)
	mockDir.On("GetRoute", ctx, barcelona, madrid).
		Return(domain.RoutePolyline{barcelona, madrid}, nil)
	mockNarrative.On("DescribeDrive", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("Cached conditions look great.", nil)
	mockStream.On("PublishToStream", ctx, domain.StreamWeatherReports, mock.Anything).Return(nil)

	resp, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Barcelona",
		EndAddress:   "Madrid",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.ComfortScore)
	mockWeather.AssertNotCalled(t, "FetchCurrent", mock.Anything, mock.Anything)
}

func TestTripReportUseCase_GetDrivingReport_NarrativeFallback(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockGeo.On("Geocode", ctx, "Madrid").Return(madridLocation(), nil)
	mockDir.On("GetRoute", ctx, barcelona, madrid).
		Return(domain.RoutePolyline{barcelona, madrid}, nil)
	mockWeather.On("FetchCurrent", ctx, mock.Anything).Return(mildObservation(), nil)
	mockNarrative.On("DescribeDrive", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.ErrDescriptionFailed)
	mockStream.On("PublishToStream", ctx, domain.StreamWeatherReports, mock.Anything).Return(nil)

	resp, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Barcelona",
		EndAddress:   "Madrid",
	})
	require.NoError(t, err)

	// Детерминированное описание вместо сорвавшейся генерации
	assert.Equal(t,
		"Perfect weather with mild temperatures, light winds, good visibility, and all daytime driving",
		resp.Description)
}

func TestTripReportUseCase_GetDrivingReport_PartialFetchFailure(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockGeo.On("Geocode", ctx, "Madrid").Return(madridLocation(), nil)
	mockDir.On("GetRoute", ctx, barcelona, madrid).
		Return(domain.RoutePolyline{barcelona, madrid}, nil)

	// Одна точка недоступна - отчёт строится по оставшимся
	mockWeather.On("FetchCurrent", ctx, barcelona).Return(nil, errors.ErrUpstreamFetchFailed)
	mockWeather.On("FetchCurrent", ctx, madrid).Return(mildObservation(), nil)

	mockNarrative.On("DescribeDrive", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("Report built from partial data.", nil)
	mockStream.On("PublishToStream", ctx, domain.StreamWeatherReports, mock.Anything).Return(nil)

	resp, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Barcelona",
		EndAddress:   "Madrid",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.ComfortScore)
}

func TestTripReportUseCase_GetDrivingReport_AllFetchesFail(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockGeo.On("Geocode", ctx, "Madrid").Return(madridLocation(), nil)
	mockDir.On("GetRoute", ctx, barcelona, madrid).
		Return(domain.RoutePolyline{barcelona, madrid}, nil)
	mockWeather.On("FetchCurrent", ctx, mock.Anything).Return(nil, errors.ErrUpstreamFetchFailed)

	_, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Barcelona",
		EndAddress:   "Madrid",
	})
	assert.ErrorIs(t, err, errors.ErrUpstreamFetchFailed)
	mockStream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestTripReportUseCase_GetDrivingReport_GeocodeFailure(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Nowhere").Return(nil, errors.ErrAddressNotFound)

	_, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Nowhere",
		EndAddress:   "Madrid",
	})
	assert.ErrorIs(t, err, errors.ErrAddressNotFound)
	mockDir.AssertNotCalled(t, "GetRoute", mock.Anything, mock.Anything, mock.Anything)
}

func TestTripReportUseCase_GetDrivingReport_StreamFailureIgnored(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockGeo.On("Geocode", ctx, "Madrid").Return(madridLocation(), nil)
	mockDir.On("GetRoute", ctx, barcelona, madrid).
		Return(domain.RoutePolyline{barcelona, madrid}, nil)
	mockWeather.On("FetchCurrent", ctx, mock.Anything).Return(mildObservation(), nil)
	mockNarrative.On("DescribeDrive", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("Fine weather.", nil)
	mockStream.On("PublishToStream", ctx, domain.StreamWeatherReports, mock.Anything).
		Return(errors.ErrCacheUnavailable)

	resp, err := uc.GetDrivingReport(ctx, dto.DriveReportRequest{
		StartAddress: "Barcelona",
		EndAddress:   "Madrid",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fine weather.", resp.Description)
}

func TestTripReportUseCase_GetCurrentReport(t *testing.T) {
	ctx := context.Background()

	mockGeo := &MockGeocodingRepository{}
	mockDir := &MockDirectionsRepository{}
	mockWeather := &MockWeatherProviderRepository{}
	mockNarrative := &MockNarrativeRepository{}
	mockStream := &MockStreamRepository{}

	uc, _ := newTripReportUseCase(mockGeo, mockDir, mockWeather, mockNarrative, mockStream)

	mockGeo.On("Geocode", ctx, "Barcelona").Return(barcelonaLocation(), nil)
	mockWeather.On("FetchCurrent", ctx, barcelona).Return(mildObservation(), nil).Once()
	mockNarrative.On("DescribeCurrent", ctx, mock.Anything, "Barcelona, Catalonia").
		Return("Sunny and calm in Barcelona.", nil)

	resp, err := uc.GetCurrentReport(ctx, dto.CurrentWeatherRequest{Address: "Barcelona"})
	require.NoError(t, err)

	assert.Equal(t, "Barcelona", resp.Location.City)
	assert.Equal(t, 100, resp.ComfortScore)
	assert.Equal(t, "Sunny and calm in Barcelona.", resp.Description)
	require.NotNil(t, resp.Observation)
	assert.Equal(t, "Clear sky", resp.Observation.Condition)

	// Повторный запрос попадает в кеш: FetchCurrent помечен Once
	_, err = uc.GetCurrentReport(ctx, dto.CurrentWeatherRequest{Address: "Barcelona"})
	require.NoError(t, err)
	mockWeather.AssertExpectations(t)
}
