package openroute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/weather-microservice/internal/config"
	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	apperrors "github.com/weather-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	profile    string
	logger     *zap.Logger
}

// NewClient создает клиент маршрутов OpenRouteService
func NewClient(cfg *config.DirectionsConfig, logger *zap.Logger) repository.DirectionsRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		profile: cfg.Profile,
		logger:  logger,
	}
}

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

// directionsResponse - geojson-ответ ORS; координаты в порядке lon,lat
type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// GetRoute возвращает ломаную автомобильного маршрута между двумя точками
func (c *client) GetRoute(ctx context.Context, start, end domain.Coordinate) (domain.RoutePolyline, error) {
	reqBody := directionsRequest{
		// ORS принимает координаты в порядке долгота-широта
		Coordinates: [][2]float64{
			{start.Lon, start.Lat},
			{end.Lon, end.Lat},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal directions request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)

	c.logger.Debug("Calling OpenRouteService",
		zap.Float64("start_lat", start.Lat),
		zap.Float64("start_lon", start.Lon),
		zap.Float64("end_lat", end.Lat),
		zap.Float64("end_lon", end.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("OpenRouteService request failed", zap.Error(err))
		return nil, apperrors.ErrDirectionsFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenRouteService returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, apperrors.ErrDirectionsFailed
	}

	var directions directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&directions); err != nil {
		c.logger.Error("Failed to decode directions response", zap.Error(err))
		return nil, apperrors.ErrDirectionsFailed
	}

	if len(directions.Features) == 0 || len(directions.Features[0].Geometry.Coordinates) == 0 {
		c.logger.Error("OpenRouteService returned no route geometry")
		return nil, apperrors.ErrDirectionsFailed
	}

	coords := directions.Features[0].Geometry.Coordinates
	polyline := make(domain.RoutePolyline, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			continue
		}
		polyline = append(polyline, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	if len(polyline) == 0 {
		return nil, apperrors.ErrDirectionsFailed
	}

	c.logger.Debug("Route received", zap.Int("vertices", len(polyline)))
	return polyline, nil
}
