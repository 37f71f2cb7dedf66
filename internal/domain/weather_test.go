package domain_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"

	"github.com/weather-microservice/internal/domain"
)

func TestReportKind_TTL(t *testing.T) {
	assert.Equal(t, time.Hour, domain.KindCurrent.TTL())
	assert.Equal(t, time.Hour, domain.KindHourly.TTL())
	assert.Equal(t, 6*time.Hour, domain.KindDaily.TTL())
}

func TestReportKind_Precision(t *testing.T) {
	assert.Equal(t, uint(5), domain.KindCurrent.Precision())
	assert.Equal(t, uint(4), domain.KindDaily.Precision())
	assert.Equal(t, uint(4), domain.KindHourly.Precision())
}

func TestReportKind_CacheKeyFormat(t *testing.T) {
	coord := domain.Coordinate{Lat: 41.3851, Lon: 2.1734}
	at := time.Date(2025, 3, 10, 14, 25, 0, 0, time.UTC)

	t.Run("current has no time bucket", func(t *testing.T) {
		want := fmt.Sprintf("current_%s", geohash.EncodeWithPrecision(coord.Lat, coord.Lon, 5))
		assert.Equal(t, want, domain.KindCurrent.CacheKey(coord, at))
		// Время не влияет на ключ текущей погоды
		assert.Equal(t, want, domain.KindCurrent.CacheKey(coord, time.Time{}))
	})

	t.Run("daily bucket is day-month-year", func(t *testing.T) {
		want := fmt.Sprintf("daily_10-03-2025_%s", geohash.EncodeWithPrecision(coord.Lat, coord.Lon, 4))
		assert.Equal(t, want, domain.KindDaily.CacheKey(coord, at))
	})

	t.Run("hourly bucket truncates minutes", func(t *testing.T) {
		want := fmt.Sprintf("hourly_14:00_10-03-2025_%s", geohash.EncodeWithPrecision(coord.Lat, coord.Lon, 4))
		assert.Equal(t, want, domain.KindHourly.CacheKey(coord, at))
	})
}

func TestReportKind_CacheKeyDeterministic(t *testing.T) {
	coord := domain.Coordinate{Lat: 55.7558, Lon: 37.6173}
	at := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	for _, kind := range []domain.ReportKind{domain.KindCurrent, domain.KindDaily, domain.KindHourly} {
		first := kind.CacheKey(coord, at)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, kind.CacheKey(coord, at))
		}
	}
}

func TestReportKind_NearbyPointsShareKey(t *testing.T) {
	// Точки в десятках метров друг от друга попадают в одну ячейку геохеша
	// и делят запись кеша - осознанная потеря точности ради попаданий
	a := domain.Coordinate{Lat: 41.38510, Lon: 2.17340}
	b := domain.Coordinate{Lat: 41.38513, Lon: 2.17344}
	at := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, domain.KindDaily.CacheKey(a, at), domain.KindDaily.CacheKey(b, at))
	assert.Equal(t, domain.KindCurrent.CacheKey(a, at), domain.KindCurrent.CacheKey(b, at))
}

func TestReportKind_DistantPointsDiffer(t *testing.T) {
	barcelona := domain.Coordinate{Lat: 41.3851, Lon: 2.1734}
	madrid := domain.Coordinate{Lat: 40.4168, Lon: -3.7038}
	at := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.NotEqual(t,
		domain.KindCurrent.CacheKey(barcelona, at),
		domain.KindCurrent.CacheKey(madrid, at),
	)
}

func TestReportKind_BucketSeparatesKinds(t *testing.T) {
	coord := domain.Coordinate{Lat: 41.3851, Lon: 2.1734}
	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	keys := []string{
		domain.KindCurrent.CacheKey(coord, at),
		domain.KindDaily.CacheKey(coord, at),
		domain.KindHourly.CacheKey(coord, at),
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "kinds must never collide on the same key")
		seen[k] = true
	}

	assert.True(t, strings.HasPrefix(keys[0], "current_"))
	assert.True(t, strings.HasPrefix(keys[1], "daily_"))
	assert.True(t, strings.HasPrefix(keys[2], "hourly_"))
}

func TestConditionLabel(t *testing.T) {
	assert.Equal(t, "Clear sky", domain.ConditionLabel(0))
	assert.Equal(t, "Rain: Heavy", domain.ConditionLabel(65))
	assert.Equal(t, "Thunderstorm with heavy hail", domain.ConditionLabel(99))
	assert.Equal(t, "Unknown", domain.ConditionLabel(42))
}
