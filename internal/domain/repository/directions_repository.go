package repository

import (
	"context"

	"github.com/weather-microservice/internal/domain"
)

// DirectionsRepository - интерфейс провайдера автомобильных маршрутов
type DirectionsRepository interface {
	// GetRoute возвращает ломаную маршрута от start до end
	GetRoute(ctx context.Context, start, end domain.Coordinate) (domain.RoutePolyline, error)
}
