package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/weather-microservice/internal/pkg/utils"
	"github.com/weather-microservice/internal/pkg/validator"
	"github.com/weather-microservice/internal/usecase"
	"github.com/weather-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// WeatherHandler - обработчик погодных запросов
type WeatherHandler struct {
	tripReportUC *usecase.TripReportUseCase
	forecastUC   *usecase.ForecastUseCase
	logger       *zap.Logger
}

// NewWeatherHandler - создание нового WeatherHandler
func NewWeatherHandler(
	tripReportUC *usecase.TripReportUseCase,
	forecastUC *usecase.ForecastUseCase,
	logger *zap.Logger,
) *WeatherHandler {
	return &WeatherHandler{
		tripReportUC: tripReportUC,
		forecastUC:   forecastUC,
		logger:       logger,
	}
}

// GetDrivingReport godoc
// @Summary Отчёт о погоде вдоль маршрута
// @Description Геокодирует оба адреса, строит автомобильный маршрут, прореживает его на опорные точки и агрегирует текущую погоду в балл комфорта поездки
// @Tags Weather
// @Accept json
// @Produce json
// @Param start path string true "Адрес начала маршрута"
// @Param end path string true "Адрес конца маршрута"
// @Success 200 {object} utils.SuccessResponse{data=dto.DriveReportResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/weather/drive/{start}/{end} [get]
func (h *WeatherHandler) GetDrivingReport(c *fiber.Ctx) error {
	var req dto.DriveReportRequest
	req.StartAddress = pathParam(c, "start")
	req.EndAddress = pathParam(c, "end")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.tripReportUC.GetDrivingReport(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetCurrentWeather godoc
// @Summary Текущая погода по адресу
// @Description Геокодирует адрес и возвращает текущую погоду с баллом комфорта
// @Tags Weather
// @Accept json
// @Produce json
// @Param address path string true "Адрес"
// @Success 200 {object} utils.SuccessResponse{data=dto.CurrentWeatherResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/weather/today/{address} [get]
func (h *WeatherHandler) GetCurrentWeather(c *fiber.Ctx) error {
	var req dto.CurrentWeatherRequest
	req.Address = pathParam(c, "address")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.tripReportUC.GetCurrentReport(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetDailyForecast godoc
// @Summary Дневной прогноз по адресу
// @Description Возвращает прогноз на 1-7 дней начиная с сегодняшнего
// @Tags Weather
// @Accept json
// @Produce json
// @Param address path string true "Адрес"
// @Param days query int false "Число дней (1-7)" default(1)
// @Success 200 {object} utils.SuccessResponse{data=dto.DailyForecastResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/weather/daily/{address} [get]
func (h *WeatherHandler) GetDailyForecast(c *fiber.Ctx) error {
	var req dto.DailyForecastRequest
	req.Address = pathParam(c, "address")
	req.Days = c.QueryInt("days", 1)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.forecastUC.GetDailyForecast(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Days),
	})
}

// GetHourlyForecast godoc
// @Summary Часовой прогноз по адресу
// @Description Возвращает прогноз на 1-24 часа начиная с текущего
// @Tags Weather
// @Accept json
// @Produce json
// @Param address path string true "Адрес"
// @Param hours query int false "Число часов (1-24)" default(1)
// @Success 200 {object} utils.SuccessResponse{data=dto.HourlyForecastResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/weather/hourly/{address} [get]
func (h *WeatherHandler) GetHourlyForecast(c *fiber.Ctx) error {
	var req dto.HourlyForecastRequest
	req.Address = pathParam(c, "address")
	req.Hours = c.QueryInt("hours", 1)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.forecastUC.GetHourlyForecast(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Hours),
	})
}

// pathParam достаёт параметр пути с раскодированием percent-encoding:
// адреса приходят вида "Barcelona%2C%20Spain"
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.QueryUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
