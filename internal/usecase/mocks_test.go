package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/weather-microservice/internal/domain"
)

// MockGeocodingRepository is a mock of GeocodingRepository
type MockGeocodingRepository struct {
	mock.Mock
}

func (m *MockGeocodingRepository) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

// MockDirectionsRepository is a mock of DirectionsRepository
type MockDirectionsRepository struct {
	mock.Mock
}

func (m *MockDirectionsRepository) GetRoute(ctx context.Context, start, end domain.Coordinate) (domain.RoutePolyline, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.RoutePolyline), args.Error(1)
}

// MockWeatherProviderRepository is a mock of WeatherProviderRepository
type MockWeatherProviderRepository struct {
	mock.Mock
}

func (m *MockWeatherProviderRepository) FetchCurrent(ctx context.Context, c domain.Coordinate) (*domain.CurrentObservation, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentObservation), args.Error(1)
}

func (m *MockWeatherProviderRepository) FetchDaily(ctx context.Context, c domain.Coordinate) ([]domain.DailyObservation, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyObservation), args.Error(1)
}

func (m *MockWeatherProviderRepository) FetchHourly(ctx context.Context, c domain.Coordinate) ([]domain.HourlyObservation, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HourlyObservation), args.Error(1)
}

// MockNarrativeRepository is a mock of NarrativeRepository
type MockNarrativeRepository struct {
	mock.Mock
}

func (m *MockNarrativeRepository) DescribeDrive(ctx context.Context, report *domain.ComfortReport, start, end *domain.Location) (string, error) {
	args := m.Called(ctx, report, start, end)
	return args.String(0), args.Error(1)
}

func (m *MockNarrativeRepository) DescribeCurrent(ctx context.Context, obs *domain.CurrentObservation, location string) (string, error) {
	args := m.Called(ctx, obs, location)
	return args.String(0), args.Error(1)
}

func (m *MockNarrativeRepository) DescribeDaily(ctx context.Context, observations []domain.DailyObservation, location string) (string, error) {
	args := m.Called(ctx, observations, location)
	return args.String(0), args.Error(1)
}

func (m *MockNarrativeRepository) DescribeHourly(ctx context.Context, observations []domain.HourlyObservation, location string) (string, error) {
	args := m.Called(ctx, observations, location)
	return args.String(0), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

// MockReportRepository is a mock of ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReportRepository) Save(ctx context.Context, report *domain.TripReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetRecent(ctx context.Context, limit int) ([]domain.TripReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TripReport), args.Error(1)
}

func (m *MockReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
