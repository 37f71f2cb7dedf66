package report_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/usecase"
	workerreport "github.com/weather-microservice/internal/worker/report"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
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

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
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

func streamMessageFor(t *testing.T, report domain.TripReport) domain.StreamMessage {
	t.Helper()
	payload, err := json.Marshal(report)
	require.NoError(t, err)
	return domain.StreamMessage{ID: "1-0", Data: string(payload)}
}

func TestReportArchiverWorker_ArchivesAndAcks(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockStream := &MockStreamRepository{}
	mockRepo := &MockReportRepository{}
	archiveUC := usecase.NewReportArchiveUseCase(mockRepo, zap.NewNop())

	report := domain.TripReport{ID: uuid.New(), StartAddress: "Barcelona, Spain", ComfortScore: 80}

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- streamMessageFor(t, report)
	close(msgChan)

	mockStream.On("CreateConsumerGroup", ctx, domain.StreamWeatherReports, "archivers").Return(nil)
	mockStream.On("ConsumeStream", ctx, domain.StreamWeatherReports, "archivers", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	mockStream.On("AckMessage", ctx, domain.StreamWeatherReports, "archivers", "1-0").Return(nil)

	saved := make(chan struct{})
	mockRepo.On("Save", ctx, mock.MatchedBy(func(r *domain.TripReport) bool {
		return r.ID == report.ID
	})).Run(func(mock.Arguments) { close(saved) }).Return(nil)

	w := workerreport.NewReportArchiverWorker(mockStream, archiveUC, "archivers", 3, zap.NewNop())

	// Канал закрыт после единственного сообщения, Start завершится сам
	err := w.Start(ctx)
	require.NoError(t, err)

	select {
	case <-saved:
	default:
		t.Fatal("report was not saved")
	}
	mockStream.AssertExpectations(t)
}

func TestReportArchiverWorker_PoisonMessageAcked(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockStream := &MockStreamRepository{}
	mockRepo := &MockReportRepository{}
	archiveUC := usecase.NewReportArchiveUseCase(mockRepo, zap.NewNop())

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "2-0", Data: "{not json"}
	close(msgChan)

	mockStream.On("CreateConsumerGroup", ctx, domain.StreamWeatherReports, "archivers").Return(nil)
	mockStream.On("ConsumeStream", ctx, domain.StreamWeatherReports, "archivers", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)
	// Битое сообщение подтверждается, чтобы не стопорить очередь
	mockStream.On("AckMessage", ctx, domain.StreamWeatherReports, "archivers", "2-0").Return(nil)

	w := workerreport.NewReportArchiverWorker(mockStream, archiveUC, "archivers", 3, zap.NewNop())

	// Ошибка разбора не ретраится: несмотря на лимит в три попытки,
	// воркер подтверждает сообщение сразу, без пауз между повторами
	started := time.Now()
	err := w.Start(ctx)
	require.NoError(t, err)
	assert.Less(t, time.Since(started), 500*time.Millisecond)

	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockStream.AssertExpectations(t)
}

func TestReportArchiverWorker_StopsOnSignal(t *testing.T) {
	ctx := context.Background()

	mockStream := &MockStreamRepository{}
	mockRepo := &MockReportRepository{}
	archiveUC := usecase.NewReportArchiveUseCase(mockRepo, zap.NewNop())

	msgChan := make(chan domain.StreamMessage)

	mockStream.On("CreateConsumerGroup", ctx, domain.StreamWeatherReports, "archivers").Return(nil)
	mockStream.On("ConsumeStream", ctx, domain.StreamWeatherReports, "archivers", mock.Anything).
		Return((<-chan domain.StreamMessage)(msgChan), nil)

	w := workerreport.NewReportArchiverWorker(mockStream, archiveUC, "archivers", 3, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
