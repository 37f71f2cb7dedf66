package locationiq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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
	logger     *zap.Logger
}

// NewClient создает клиент геокодера LocationIQ
func NewClient(cfg *config.GeocodingConfig, logger *zap.Logger) repository.GeocodingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// geocodeResult - элемент ответа LocationIQ; lat/lon приходят строками
type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"address"`
}

// Geocode переводит свободный адрес в координаты
func (c *client) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	values := url.Values{}
	values.Set("q", address)
	values.Set("key", c.apiKey)
	values.Set("format", "json")
	values.Set("limit", "1")
	values.Set("normalizeaddress", "1")
	values.Set("addressdetails", "1")

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	c.logger.Debug("Calling LocationIQ", zap.String("address", address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("LocationIQ request failed", zap.Error(err))
		return nil, apperrors.ErrGeocodingFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrAddressNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("LocationIQ returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, apperrors.ErrGeocodingFailed
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Error("Failed to decode LocationIQ response", zap.Error(err))
		return nil, apperrors.ErrGeocodingFailed
	}

	if len(results) == 0 {
		return nil, apperrors.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	loc := &domain.Location{
		Coordinate:  domain.Coordinate{Lat: lat, Lon: lon},
		DisplayName: results[0].DisplayName,
		City:        results[0].Address.City,
		State:       results[0].Address.State,
	}

	c.logger.Debug("Address geocoded",
		zap.String("address", address),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	return loc, nil
}
