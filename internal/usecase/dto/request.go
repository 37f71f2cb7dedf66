package dto

// DriveReportRequest - запрос на отчёт о погоде вдоль маршрута
type DriveReportRequest struct {
	StartAddress string `json:"start_address" validate:"required,min=2"`
	EndAddress   string `json:"end_address" validate:"required,min=2"`
}

// CurrentWeatherRequest - запрос текущей погоды по адресу
type CurrentWeatherRequest struct {
	Address string `json:"address" validate:"required,min=2"`
}

// DailyForecastRequest - запрос дневного прогноза по адресу
type DailyForecastRequest struct {
	Address string `json:"address" validate:"required,min=2"`
	Days    int    `json:"days" validate:"omitempty,min=1,max=7"`
}

// HourlyForecastRequest - запрос часового прогноза по адресу
type HourlyForecastRequest struct {
	Address string `json:"address" validate:"required,min=2"`
	Hours   int    `json:"hours" validate:"omitempty,min=1,max=24"`
}

// RecentReportsRequest - запрос последних сохранённых отчётов
type RecentReportsRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}
