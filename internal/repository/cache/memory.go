package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
)

type memoryEntry struct {
	data       []byte
	insertedAt time.Time
	ttl        time.Duration
}

func (e memoryEntry) expired(now time.Time) bool {
	return now.Sub(e.insertedAt) > e.ttl
}

// MemoryCacheRepository - in-memory реализация погодного кеша для тестов
// и деплоя без Redis. Протухшие записи вычищаются лениво при чтении.
type MemoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCacheRepository создает пустой in-memory кеш
func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock подменяет источник времени; нужен тестам TTL
func (r *MemoryCacheRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

var _ repository.WeatherCacheRepository = (*MemoryCacheRepository)(nil)

func (r *MemoryCacheRepository) Has(ctx context.Context, key string) (bool, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	now := r.now()
	r.mu.RUnlock()

	if !ok || entry.expired(now) {
		return false, nil
	}
	return true, nil
}

func (r *MemoryCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return nil, nil
	}
	if entry.expired(r.now()) {
		delete(r.entries, key)
		return nil, nil
	}
	return entry.data, nil
}

func (r *MemoryCacheRepository) Put(ctx context.Context, key string, value []byte, kind domain.ReportKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]byte, len(value))
	copy(data, value)
	r.entries[key] = memoryEntry{
		data:       data,
		insertedAt: r.now(),
		ttl:        kind.TTL(),
	}
	return nil
}

func (r *MemoryCacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *MemoryCacheRepository) GetCurrent(ctx context.Context, key string) (*domain.CurrentObservation, error) {
	var obs domain.CurrentObservation
	ok, err := r.getJSON(ctx, key, &obs)
	if err != nil || !ok {
		return nil, err
	}
	return &obs, nil
}

func (r *MemoryCacheRepository) PutCurrent(ctx context.Context, key string, obs *domain.CurrentObservation) error {
	return r.putJSON(ctx, key, obs, domain.KindCurrent)
}

func (r *MemoryCacheRepository) GetDaily(ctx context.Context, key string) (*domain.DailyObservation, error) {
	var obs domain.DailyObservation
	ok, err := r.getJSON(ctx, key, &obs)
	if err != nil || !ok {
		return nil, err
	}
	return &obs, nil
}

func (r *MemoryCacheRepository) PutDaily(ctx context.Context, key string, obs *domain.DailyObservation) error {
	return r.putJSON(ctx, key, obs, domain.KindDaily)
}

func (r *MemoryCacheRepository) GetHourly(ctx context.Context, key string) (*domain.HourlyObservation, error) {
	var obs domain.HourlyObservation
	ok, err := r.getJSON(ctx, key, &obs)
	if err != nil || !ok {
		return nil, err
	}
	return &obs, nil
}

func (r *MemoryCacheRepository) PutHourly(ctx context.Context, key string, obs *domain.HourlyObservation) error {
	return r.putJSON(ctx, key, obs, domain.KindHourly)
}

func (r *MemoryCacheRepository) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *MemoryCacheRepository) putJSON(ctx context.Context, key string, obs interface{}, kind domain.ReportKind) error {
	data, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("marshal observation: %w", err)
	}
	return r.Put(ctx, key, data, kind)
}
