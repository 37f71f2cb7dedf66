package repository

import (
	"context"

	"github.com/weather-microservice/internal/domain"
)

// GeocodingRepository - интерфейс геокодера адресов
type GeocodingRepository interface {
	// Geocode переводит свободный адрес в координаты с подписью локации
	Geocode(ctx context.Context, address string) (*domain.Location, error)
}
