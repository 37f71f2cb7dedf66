package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/weather-microservice/internal/config"
	"github.com/weather-microservice/internal/domain"
	"github.com/weather-microservice/internal/domain/repository"
	apperrors "github.com/weather-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

// Списки запрашиваемых полей. Порядок зафиксирован контрактом с Open-Meteo:
// менять его можно только синхронно со структурами разбора ответа.
var (
	currentFields = []string{
		"apparent_temperature",
		"precipitation",
		"weather_code",
		"is_day",
		"wind_gusts_10m",
		"visibility",
	}
	dailyFields = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"apparent_temperature_max",
		"apparent_temperature_min",
		"sunrise",
		"sunset",
		"precipitation_sum",
		"wind_speed_10m_max",
	}
	hourlyFields = []string{
		"apparent_temperature",
		"precipitation",
		"weather_code",
		"wind_speed_10m",
		"relative_humidity_2m",
		"temperature_2m",
	}
)

// Форматы времени в ответах Open-Meteo.
const (
	apiDateLayout     = "2006-01-02"
	apiDateTimeLayout = "2006-01-02T15:04"
	sunriseLayout     = "03:04 PM"
)

type client struct {
	httpClient     *http.Client
	baseURL        string
	breaker        *gobreaker.CircuitBreaker
	maxRetries     int
	initialBackoff time.Duration
	logger         *zap.Logger
}

// NewClient создает клиент Open-Meteo с circuit breaker и повторами
// с экспоненциальной задержкой.
func NewClient(cfg *config.WeatherConfig, logger *zap.Logger) repository.WeatherProviderRepository {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:        cfg.BaseURL,
		breaker:        breaker,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		logger:         logger,
	}
}

type currentPayload struct {
	Current struct {
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		IsDay               int     `json:"is_day"`
		WindGusts           float64 `json:"wind_gusts_10m"`
		Visibility          float64 `json:"visibility"`
	} `json:"current"`
}

// dailyPayload - параллельные массивы дневного блока Open-Meteo
type dailyPayload struct {
	Daily struct {
		Time                   []string  `json:"time"`
		WeatherCode            []int     `json:"weather_code"`
		Temperature2mMax       []float64 `json:"temperature_2m_max"`
		Temperature2mMin       []float64 `json:"temperature_2m_min"`
		ApparentTemperatureMax []float64 `json:"apparent_temperature_max"`
		ApparentTemperatureMin []float64 `json:"apparent_temperature_min"`
		Sunrise                []string  `json:"sunrise"`
		Sunset                 []string  `json:"sunset"`
		PrecipitationSum       []float64 `json:"precipitation_sum"`
		WindSpeed10mMax        []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

type hourlyPayload struct {
	Hourly struct {
		Time                []string  `json:"time"`
		ApparentTemperature []float64 `json:"apparent_temperature"`
		Precipitation       []float64 `json:"precipitation"`
		WeatherCode         []int     `json:"weather_code"`
		WindSpeed10m        []float64 `json:"wind_speed_10m"`
		RelativeHumidity2m  []float64 `json:"relative_humidity_2m"`
		Temperature2m       []float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// FetchCurrent возвращает текущую погоду в точке
func (c *client) FetchCurrent(ctx context.Context, coord domain.Coordinate) (*domain.CurrentObservation, error) {
	values := c.baseValues(coord)
	values.Set("current", strings.Join(currentFields, ","))

	var payload currentPayload
	if err := c.doJSON(ctx, values, &payload); err != nil {
		return nil, err
	}

	cur := payload.Current
	return &domain.CurrentObservation{
		ApparentTemp:  cur.ApparentTemperature,
		Precipitation: cur.Precipitation,
		Condition:     domain.ConditionLabel(cur.WeatherCode),
		IsDay:         cur.IsDay == 1,
		WindGusts:     cur.WindGusts,
		Visibility:    cur.Visibility,
	}, nil
}

// FetchDaily возвращает дневной прогноз на весь горизонт (7 дней),
// вызывающий код кеширует дни покорзинно.
func (c *client) FetchDaily(ctx context.Context, coord domain.Coordinate) ([]domain.DailyObservation, error) {
	values := c.baseValues(coord)
	values.Set("daily", strings.Join(dailyFields, ","))
	values.Set("forecast_days", fmt.Sprintf("%d", domain.ForecastDays))
	values.Set("timezone", "auto")

	var payload dailyPayload
	if err := c.doJSON(ctx, values, &payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	observations := make([]domain.DailyObservation, 0, len(d.Time))
	for i, raw := range d.Time {
		date, err := time.Parse(apiDateLayout, raw)
		if err != nil {
			c.logger.Warn("Skipping daily entry with bad date", zap.String("date", raw))
			continue
		}

		observations = append(observations, domain.DailyObservation{
			Date:             date.Format(domain.DailyBucketLayout),
			Lat:              coord.Lat,
			Lon:              coord.Lon,
			Condition:        domain.ConditionLabel(intAt(d.WeatherCode, i)),
			MaxTemp:          floatAt(d.Temperature2mMax, i),
			MinTemp:          floatAt(d.Temperature2mMin, i),
			MaxApparentTemp:  floatAt(d.ApparentTemperatureMax, i),
			MinApparentTemp:  floatAt(d.ApparentTemperatureMin, i),
			Sunrise:          formatSunTime(stringAt(d.Sunrise, i)),
			Sunset:           formatSunTime(stringAt(d.Sunset, i)),
			PrecipitationSum: floatAt(d.PrecipitationSum, i),
			MaxWindSpeed:     floatAt(d.WindSpeed10mMax, i),
		})
	}

	if len(observations) == 0 {
		return nil, apperrors.ErrUpstreamFetchFailed
	}
	return observations, nil
}

// FetchHourly возвращает часовой прогноз на ближайшие сутки
func (c *client) FetchHourly(ctx context.Context, coord domain.Coordinate) ([]domain.HourlyObservation, error) {
	values := c.baseValues(coord)
	values.Set("hourly", strings.Join(hourlyFields, ","))
	values.Set("forecast_hours", fmt.Sprintf("%d", domain.ForecastHours))
	values.Set("timezone", "auto")

	var payload hourlyPayload
	if err := c.doJSON(ctx, values, &payload); err != nil {
		return nil, err
	}

	h := payload.Hourly
	observations := make([]domain.HourlyObservation, 0, len(h.Time))
	for i, raw := range h.Time {
		hour, err := time.Parse(apiDateTimeLayout, raw)
		if err != nil {
			c.logger.Warn("Skipping hourly entry with bad timestamp", zap.String("time", raw))
			continue
		}

		observations = append(observations, domain.HourlyObservation{
			DateHour:         hour.Format(domain.HourlyBucketLayout),
			Lat:              coord.Lat,
			Lon:              coord.Lon,
			Temp:             floatAt(h.Temperature2m, i),
			ApparentTemp:     floatAt(h.ApparentTemperature, i),
			RelativeHumidity: floatAt(h.RelativeHumidity2m, i),
			PrecipitationSum: floatAt(h.Precipitation, i),
			WindSpeed:        floatAt(h.WindSpeed10m, i),
			Condition:        domain.ConditionLabel(intAt(h.WeatherCode, i)),
		})
	}

	if len(observations) == 0 {
		return nil, apperrors.ErrUpstreamFetchFailed
	}
	return observations, nil
}

func (c *client) baseValues(coord domain.Coordinate) url.Values {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coord.Lat))
	values.Set("longitude", fmt.Sprintf("%f", coord.Lon))
	return values
}

// doJSON выполняет запрос через circuit breaker с повторами и
// экспоненциальной задержкой, затем разбирает JSON-ответ.
func (c *client) doJSON(ctx context.Context, values url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())

	var lastErr error
	backoff := c.initialBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, err := c.breaker.Execute(func() (interface{}, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if reqErr != nil {
				return nil, reqErr
			}

			resp, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			defer resp.Body.Close()

			body, readErr := io.ReadAll(resp.Body)
			if readErr != nil {
				return nil, readErr
			}
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("openmeteo status %d: %s", resp.StatusCode, string(body))
			}
			return body, nil
		})

		if err == nil {
			if jsonErr := json.Unmarshal(result.([]byte), out); jsonErr != nil {
				c.logger.Error("Failed to decode Open-Meteo response", zap.Error(jsonErr))
				return apperrors.ErrUpstreamFetchFailed
			}
			return nil
		}

		// Открытый breaker означает, что провайдер лежит: повторы бесполезны
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("Open-Meteo circuit breaker open")
			return apperrors.ErrUpstreamFetchFailed
		}

		lastErr = err
		if attempt == c.maxRetries {
			break
		}

		c.logger.Debug("Retrying Open-Meteo request",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	c.logger.Error("Open-Meteo request failed after retries", zap.Error(lastErr))
	return apperrors.ErrUpstreamFetchFailed
}

// formatSunTime переводит ISO-время восхода/заката в "06:45 AM"
func formatSunTime(raw string) string {
	if raw == "" {
		return ""
	}
	ts, err := time.Parse(apiDateTimeLayout, raw)
	if err != nil {
		return raw
	}
	return ts.Format(sunriseLayout)
}

// Доступ к параллельным массивам терпим к неполным ответам провайдера.
func floatAt(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func intAt(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return -1
}

func stringAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
