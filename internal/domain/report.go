package domain

import (
	"time"

	"github.com/google/uuid"
)

// Стрим с готовыми отчётами о маршрутах; читается воркером-архиватором.
const StreamWeatherReports = "stream:weather:reports"

// TripReport - итоговый отчёт о погоде на маршруте. Публикуется API в
// Redis Stream и сохраняется воркером в Postgres.
type TripReport struct {
	ID            uuid.UUID `json:"id" db:"id"`
	StartAddress  string    `json:"start_address" db:"start_address"`
	EndAddress    string    `json:"end_address" db:"end_address"`
	StartLat      float64   `json:"start_lat" db:"start_lat"`
	StartLon      float64   `json:"start_lon" db:"start_lon"`
	EndLat        float64   `json:"end_lat" db:"end_lat"`
	EndLon        float64   `json:"end_lon" db:"end_lon"`
	SamplePoints  int       `json:"sample_points" db:"sample_points"`
	MaxPrecip     float64   `json:"max_precip" db:"max_precip"`
	MeanTemp      float64   `json:"mean_temp" db:"mean_temp"`
	MaxGust       float64   `json:"max_gust" db:"max_gust"`
	MinVisibility float64   `json:"min_visibility" db:"min_visibility"`
	IsDay         bool      `json:"is_day" db:"is_day"`
	ComfortScore  int       `json:"comfort_score" db:"comfort_score"`
	Description   string    `json:"description" db:"description"`
	Conditions    []string  `json:"conditions" db:"-"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// StreamMessage - сообщение из Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
