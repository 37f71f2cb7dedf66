package dto

import "github.com/weather-microservice/internal/domain"

// LocationDTO - геокодированный адрес
type LocationDTO struct {
	DisplayName string  `json:"display_name"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// NewLocationDTO собирает DTO из доменной модели
func NewLocationDTO(loc *domain.Location) LocationDTO {
	return LocationDTO{
		DisplayName: loc.DisplayName,
		City:        loc.City,
		State:       loc.State,
		Lat:         loc.Lat,
		Lon:         loc.Lon,
	}
}

// DriveReportResponse - отчёт о погоде вдоль маршрута
type DriveReportResponse struct {
	ReportID      string      `json:"report_id"`
	Start         LocationDTO `json:"start"`
	End           LocationDTO `json:"end"`
	SamplePoints  int         `json:"sample_points"`
	MaxPrecip     float64     `json:"max_precip"`
	MeanTemp      float64     `json:"mean_temp"`
	MaxGust       float64     `json:"max_gust"`
	MinVisibility float64     `json:"min_visibility"`
	IsDay         bool        `json:"is_day"`
	ComfortScore  int         `json:"comfort_score"`
	Description   string      `json:"description"`
	Conditions    []string    `json:"conditions"`
}

// CurrentWeatherResponse - текущая погода в точке
type CurrentWeatherResponse struct {
	Location     LocationDTO                `json:"location"`
	Observation  *domain.CurrentObservation `json:"observation"`
	ComfortScore int                        `json:"comfort_score"`
	Description  string                     `json:"description"`
}

// DailyForecastResponse - дневной прогноз
type DailyForecastResponse struct {
	Location    LocationDTO               `json:"location"`
	Days        []domain.DailyObservation `json:"days"`
	Description string                    `json:"description"`
}

// HourlyForecastResponse - часовой прогноз
type HourlyForecastResponse struct {
	Location    LocationDTO                `json:"location"`
	Hours       []domain.HourlyObservation `json:"hours"`
	Description string                     `json:"description"`
}

// RecentReportsResponse - последние сохранённые отчёты
type RecentReportsResponse struct {
	Reports []domain.TripReport `json:"reports"`
	Total   int                 `json:"total"`
}
