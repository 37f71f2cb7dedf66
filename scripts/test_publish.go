// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type TripReport struct {
	ID            uuid.UUID `json:"id"`
	StartAddress  string    `json:"start_address"`
	EndAddress    string    `json:"end_address"`
	StartLat      float64   `json:"start_lat"`
	StartLon      float64   `json:"start_lon"`
	EndLat        float64   `json:"end_lat"`
	EndLon        float64   `json:"end_lon"`
	SamplePoints  int       `json:"sample_points"`
	MaxPrecip     float64   `json:"max_precip"`
	MeanTemp      float64   `json:"mean_temp"`
	MaxGust       float64   `json:"max_gust"`
	MinVisibility float64   `json:"min_visibility"`
	IsDay         bool      `json:"is_day"`
	ComfortScore  int       `json:"comfort_score"`
	Description   string    `json:"description"`
	Conditions    []string  `json:"conditions"`
	CreatedAt     time.Time `json:"created_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовый отчёт (Barcelona -> Madrid)
	report := TripReport{
		ID:            uuid.New(),
		StartAddress:  "Barcelona",
		EndAddress:    "Madrid",
		StartLat:      41.3851,
		StartLon:      2.1734,
		EndLat:        40.4168,
		EndLon:        -3.7038,
		SamplePoints:  13,
		MaxPrecip:     0.4,
		MeanTemp:      18.5,
		MaxGust:       18.5,
		MinVisibility: 9000,
		IsDay:         true,
		ComfortScore:  84,
		Description:   "Perfect weather with mild temperatures, light winds, good visibility, and all daytime driving",
		Conditions:    []string{"Clear sky", "Partly cloudy"},
		CreatedAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(report)
	if err != nil {
		log.Fatalf("Failed to marshal report: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:weather:reports",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish report: %v", err)
	}

	fmt.Printf("✅ Report published successfully!\n")
	fmt.Printf("   Stream: stream:weather:reports\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Report ID: %s\n", report.ID)
	fmt.Printf("   Route: %s -> %s\n", report.StartAddress, report.EndAddress)
	fmt.Printf("   Comfort score: %d\n", report.ComfortScore)
	fmt.Printf("\n⏳ The archiver worker should persist it to trip_reports shortly.\n")
	fmt.Printf("   Verify with: curl http://localhost:8080/api/v1/reports/recent\n")
}
