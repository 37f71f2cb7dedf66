package domain

import (
	"github.com/weather-microservice/internal/pkg/errors"
	"github.com/weather-microservice/internal/pkg/utils"
)

// DefaultSampleInterval - минимальный шаг между опорными точками маршрута, метры (~48 км)
const DefaultSampleInterval float64 = 48000

// SampleRoute прореживает ломаную маршрута до опорных точек с шагом не менее
// intervalMeters по дуге большого круга. Первая вершина попадает в выборку
// всегда. При includeEnd последняя вершина добавляется безусловно - итоговый
// интервал может оказаться короче шага, вплоть до дубликата последней
// выбранной точки; дубликаты не удаляются.
func SampleRoute(polyline RoutePolyline, intervalMeters float64, includeEnd bool) ([]SamplePoint, error) {
	if len(polyline) == 0 {
		return nil, errors.ErrEmptyRoute
	}
	if intervalMeters <= 0 {
		return nil, errors.ErrInvalidSampleInterval
	}

	points := make([]SamplePoint, 0, 2)
	points = append(points, newSamplePoint(polyline[0]))

	var distance float64
	for i := 1; i < len(polyline); i++ {
		prev := polyline[i-1]
		curr := polyline[i]

		distance += utils.HaversineDistanceMeters(prev.Lat, prev.Lon, curr.Lat, curr.Lon)

		if distance >= intervalMeters {
			points = append(points, newSamplePoint(curr))
			distance = 0
		}
	}

	if includeEnd {
		points = append(points, newSamplePoint(polyline[len(polyline)-1]))
	}

	return points, nil
}

func newSamplePoint(c Coordinate) SamplePoint {
	return SamplePoint{
		Coordinate: c,
		CacheKey:   KindCurrent.CacheKey(c, zeroBucketTime),
	}
}
