package domain

import (
	"fmt"
	"time"

	"github.com/mmcloughlin/geohash"
)

// ReportKind - вид погодного отчёта. Определяет точность геохеша,
// формат временной корзины и TTL записи в кеше.
type ReportKind string

const (
	KindCurrent ReportKind = "current"
	KindDaily   ReportKind = "daily"
	KindHourly  ReportKind = "hourly"
)

// Лимиты openmeteo-запросов: всегда тянем полную неделю/сутки,
// потому что ответ кешируется покорзинно и может пригодиться позже.
const (
	ForecastDays  = 7
	ForecastHours = 24
)

const (
	currentCacheTTL = time.Hour
	hourlyCacheTTL  = time.Hour
	dailyCacheTTL   = 6 * time.Hour
)

// Форматы временных корзин в ключах кеша (день-месяц-год).
const (
	DailyBucketLayout  = "02-01-2006"
	HourlyBucketLayout = "15:00_02-01-2006"
)

// zeroBucketTime - заглушка для видов без временной корзины.
var zeroBucketTime time.Time

// TTL возвращает срок жизни записи кеша для данного вида.
func (k ReportKind) TTL() time.Duration {
	switch k {
	case KindDaily:
		return dailyCacheTTL
	case KindHourly:
		return hourlyCacheTTL
	default:
		return currentCacheTTL
	}
}

// Precision - длина геохеша в ключе кеша. Для текущей погоды ячейка ~5x5 км
// (precision 5), для прогнозов достаточно ячейки ~39x20 км (precision 4).
func (k ReportKind) Precision() uint {
	if k == KindCurrent {
		return 5
	}
	return 4
}

func (k ReportKind) bucketLayout() string {
	switch k {
	case KindDaily:
		return DailyBucketLayout
	case KindHourly:
		return HourlyBucketLayout
	default:
		return ""
	}
}

// CacheKey строит детерминированный ключ кеша вида "{kind}_{bucket}_{geohash}".
// Соседние точки внутри одной ячейки геохеша получают одинаковый ключ - это
// осознанный размен точности на долю попаданий в кеш. У текущей погоды
// временной корзины нет, запись устаревает только по TTL.
func (k ReportKind) CacheKey(c Coordinate, at time.Time) string {
	gh := geohash.EncodeWithPrecision(c.Lat, c.Lon, k.Precision())
	if layout := k.bucketLayout(); layout != "" {
		return fmt.Sprintf("%s_%s_%s", k, at.Format(layout), gh)
	}
	return fmt.Sprintf("%s_%s", k, gh)
}

// CurrentObservation - текущая погода в одной точке.
// Единицы фиксированы по всему сервису: температура °C, ветер км/ч,
// осадки мм, видимость м. Конвертаций нигде нет.
type CurrentObservation struct {
	ApparentTemp  float64 `json:"apparent_temp"`
	Precipitation float64 `json:"precipitation"`
	Condition     string  `json:"condition"`
	IsDay         bool    `json:"is_day"`
	WindGusts     float64 `json:"wind_gusts"`
	Visibility    float64 `json:"visibility"`
}

// DailyObservation - погода на один день для одной точки.
type DailyObservation struct {
	Date             string  `json:"date"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Condition        string  `json:"condition"`
	MaxTemp          float64 `json:"max_temp"`
	MinTemp          float64 `json:"min_temp"`
	MaxApparentTemp  float64 `json:"max_apparent_temp"`
	MinApparentTemp  float64 `json:"min_apparent_temp"`
	Sunrise          string  `json:"sunrise"`
	Sunset           string  `json:"sunset"`
	PrecipitationSum float64 `json:"precipitation_sum"`
	MaxWindSpeed     float64 `json:"max_wind_speed"`
}

// HourlyObservation - погода на один час для одной точки.
type HourlyObservation struct {
	DateHour         string  `json:"date_hour"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Temp             float64 `json:"temp"`
	ApparentTemp     float64 `json:"apparent_temp"`
	RelativeHumidity float64 `json:"relative_humidity"`
	PrecipitationSum float64 `json:"precipitation_sum"`
	WindSpeed        float64 `json:"wind_speed"`
	Condition        string  `json:"condition"`
}

// ComfortReport - сводный отчёт по набору текущих наблюдений: экстремумы,
// признак "весь путь при свете дня", итоговый балл комфорта и описание.
type ComfortReport struct {
	MaxPrecip     float64 `json:"max_precip"`
	MeanTemp      float64 `json:"mean_temp"`
	MaxGust       float64 `json:"max_gust"`
	MinVisibility float64 `json:"min_visibility"`
	IsDay         bool    `json:"is_day"`
	ComfortScore  int     `json:"comfort_score"`
	Description   string  `json:"description"`
}
