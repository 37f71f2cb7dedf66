package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/weather-microservice/internal/pkg/errors"
)

// Веса факторов комфорта, в сумме 1.0.
const (
	weightPrecipitation = 0.25
	weightTemperature   = 0.20
	weightWind          = 0.10
	weightVisibility    = 0.30
	weightDayNight      = 0.15
)

// Идеальный диапазон средней ощущаемой температуры, °C.
const (
	idealTempMin = 20.0
	idealTempMax = 25.0
)

// PrecipitationScore оценивает максимум осадков по выборке.
// Значение - мм осадков за 15-минутный интервал, отсюда множитель 4
// для приведения к мм/ч.
func PrecipitationScore(maxPrecip float64) float64 {
	switch {
	case maxPrecip == 0:
		return 100
	case maxPrecip*4 < 3:
		return 50
	default:
		return 0
	}
}

// TemperatureScore оценивает среднюю ощущаемую температуру.
// Строго внутри идеального диапазона - 100; в (5,20] и [25,28) - 50;
// иначе 0. Границы 20 и 25 относятся к среднему поясу намеренно.
func TemperatureScore(meanTemp float64) float64 {
	switch {
	case meanTemp > idealTempMin && meanTemp < idealTempMax:
		return 100
	case meanTemp > 5 && meanTemp <= idealTempMin:
		return 50
	case meanTemp >= idealTempMax && meanTemp < 28:
		return 50
	default:
		return 0
	}
}

// WindScore оценивает максимальный порыв ветра, км/ч.
func WindScore(maxGust float64) float64 {
	switch {
	case maxGust < 10:
		return 100
	case maxGust < 20:
		return 50
	default:
		return 0
	}
}

// VisibilityScore оценивает минимальную видимость, метры.
func VisibilityScore(minVisibility float64) float64 {
	switch {
	case minVisibility > 5000:
		return 100
	case minVisibility > 3000:
		return 80
	case minVisibility > 1000:
		return 50
	case minVisibility > 500:
		return 20
	default:
		return 0
	}
}

// DayNightScore: 100 только если вся выборка пришлась на светлое время.
func DayNightScore(isDay bool) float64 {
	if isDay {
		return 100
	}
	return 0
}

// CalculateComfortScore сворачивает частные оценки во взвешенную сумму.
// Округление - банковское (round half to even): 12.5 -> 12.
func CalculateComfortScore(maxPrecip, meanTemp, maxGust, minVisibility float64, isDay bool) int {
	score := PrecipitationScore(maxPrecip)*weightPrecipitation +
		TemperatureScore(meanTemp)*weightTemperature +
		WindScore(maxGust)*weightWind +
		VisibilityScore(minVisibility)*weightVisibility +
		DayNightScore(isDay)*weightDayNight

	return int(math.RoundToEven(score))
}

// AggregateCurrent сводит набор текущих наблюдений в ComfortReport.
// Маршрут считается дневным, только если дневная каждая точка выборки.
// Описание заполняется детерминированным шаблоном; вызывающий слой может
// заменить его текстом внешнего генератора.
func AggregateCurrent(observations []CurrentObservation) (*ComfortReport, error) {
	if len(observations) == 0 {
		return nil, errors.ErrEmptyObservations
	}

	report := &ComfortReport{
		MaxPrecip:     observations[0].Precipitation,
		MinVisibility: observations[0].Visibility,
		MaxGust:       observations[0].WindGusts,
		IsDay:         true,
	}

	var tempSum float64
	for _, obs := range observations {
		if obs.Precipitation > report.MaxPrecip {
			report.MaxPrecip = obs.Precipitation
		}
		if obs.WindGusts > report.MaxGust {
			report.MaxGust = obs.WindGusts
		}
		if obs.Visibility < report.MinVisibility {
			report.MinVisibility = obs.Visibility
		}
		if !obs.IsDay {
			report.IsDay = false
		}
		tempSum += obs.ApparentTemp
	}
	report.MeanTemp = tempSum / float64(len(observations))

	report.ComfortScore = CalculateComfortScore(
		report.MaxPrecip,
		report.MeanTemp,
		report.MaxGust,
		report.MinVisibility,
		report.IsDay,
	)
	report.Description = FallbackDescription(report)

	return report, nil
}

// FallbackDescription собирает описание отчёта из тех же порогов, что и
// оценки: гарантирует непустое описание, когда внешний генератор недоступен.
func FallbackDescription(r *ComfortReport) string {
	var b strings.Builder

	switch {
	case r.ComfortScore >= 80:
		b.WriteString("Perfect weather with ")
	case r.ComfortScore >= 50:
		b.WriteString("Good weather with ")
	case r.ComfortScore >= 20:
		b.WriteString("Fair weather with ")
	default:
		b.WriteString("Poor weather with ")
	}

	if r.MaxPrecip > 0 {
		b.WriteString("some precipitation, ")
	}

	if r.ComfortScore >= 50 {
		b.WriteString("mild temperatures, ")
	} else {
		b.WriteString("uncomfortable temperatures, ")
	}

	if r.MaxGust > 10 {
		b.WriteString("strong winds, ")
	} else {
		b.WriteString("light winds, ")
	}

	if r.MinVisibility < 5000 {
		b.WriteString("low visibility, ")
	} else {
		b.WriteString("good visibility, ")
	}

	if r.IsDay {
		b.WriteString("and all daytime driving")
	} else {
		b.WriteString("and some nighttime driving")
	}

	return b.String()
}

// FallbackDailyDescription - детерминированная сводка дневного прогноза
// на случай отказа внешнего генератора.
func FallbackDailyDescription(days []DailyObservation, location string) string {
	if len(days) == 0 {
		return fmt.Sprintf("No forecast data available for %s", location)
	}

	minTemp := days[0].MinTemp
	maxTemp := days[0].MaxTemp
	var totalPrecip float64
	for _, d := range days {
		if d.MinTemp < minTemp {
			minTemp = d.MinTemp
		}
		if d.MaxTemp > maxTemp {
			maxTemp = d.MaxTemp
		}
		totalPrecip += d.PrecipitationSum
	}

	return fmt.Sprintf(
		"Forecast for %s over %d day(s): temperatures between %.1f and %.1f degrees celsius, %.1f mm of precipitation expected, starting with %s",
		location, len(days), minTemp, maxTemp, totalPrecip, strings.ToLower(days[0].Condition),
	)
}

// FallbackHourlyDescription - детерминированная сводка часового прогноза.
func FallbackHourlyDescription(hours []HourlyObservation, location string) string {
	if len(hours) == 0 {
		return fmt.Sprintf("No forecast data available for %s", location)
	}

	minTemp := hours[0].Temp
	maxTemp := hours[0].Temp
	var totalPrecip, maxWind float64
	for _, h := range hours {
		if h.Temp < minTemp {
			minTemp = h.Temp
		}
		if h.Temp > maxTemp {
			maxTemp = h.Temp
		}
		if h.WindSpeed > maxWind {
			maxWind = h.WindSpeed
		}
		totalPrecip += h.PrecipitationSum
	}

	return fmt.Sprintf(
		"Forecast for %s over %d hour(s): temperatures between %.1f and %.1f degrees celsius, winds up to %.1f km/h, %.1f mm of precipitation expected",
		location, len(hours), minTemp, maxTemp, maxWind, totalPrecip,
	)
}
