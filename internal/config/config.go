package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Route      RouteConfig
	Weather    WeatherConfig
	Geocoding  GeocodingConfig
	Directions DirectionsConfig
	Narrative  NarrativeConfig
	Log        LogConfig
	Worker     WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RouteConfig - параметры прореживания маршрута
type RouteConfig struct {
	SampleIntervalMeters float64
}

// WeatherConfig - параметры клиента Open-Meteo
type WeatherConfig struct {
	BaseURL        string
	RequestTimeout int // seconds
	MaxRetries     int
	InitialBackoff time.Duration
}

// GeocodingConfig - параметры клиента LocationIQ
type GeocodingConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int // seconds
}

// DirectionsConfig - параметры клиента OpenRouteService
type DirectionsConfig struct {
	BaseURL        string
	APIKey         string
	Profile        string
	RequestTimeout int // seconds
}

// NarrativeConfig - параметры LLM-клиента OpenRouter
type NarrativeConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	RequestTimeout int // seconds
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
	Retention     time.Duration
	PruneInterval time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env опционален: конфиг может прийти целиком из окружения
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Route: RouteConfig{
			SampleIntervalMeters: viper.GetFloat64("ROUTE_SAMPLE_INTERVAL"),
		},
		Weather: WeatherConfig{
			BaseURL:        viper.GetString("OPENMETEO_BASE_URL"),
			RequestTimeout: viper.GetInt("OPENMETEO_TIMEOUT"),
			MaxRetries:     viper.GetInt("OPENMETEO_MAX_RETRIES"),
			InitialBackoff: time.Duration(viper.GetInt("OPENMETEO_INITIAL_BACKOFF_MS")) * time.Millisecond,
		},
		Geocoding: GeocodingConfig{
			BaseURL:        viper.GetString("LOCATIONIQ_BASE_URL"),
			APIKey:         viper.GetString("LOCATIONIQ_API_KEY"),
			RequestTimeout: viper.GetInt("LOCATIONIQ_TIMEOUT"),
		},
		Directions: DirectionsConfig{
			BaseURL:        viper.GetString("ORS_BASE_URL"),
			APIKey:         viper.GetString("ORS_API_KEY"),
			Profile:        viper.GetString("ORS_PROFILE"),
			RequestTimeout: viper.GetInt("ORS_TIMEOUT"),
		},
		Narrative: NarrativeConfig{
			BaseURL:        viper.GetString("OPENROUTER_BASE_URL"),
			APIKey:         viper.GetString("OPENROUTER_API_KEY"),
			Model:          viper.GetString("OPENROUTER_MODEL"),
			RequestTimeout: viper.GetInt("OPENROUTER_TIMEOUT"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
			Retention:     time.Duration(viper.GetInt("WORKER_RETENTION_HOURS")) * time.Hour,
			PruneInterval: time.Duration(viper.GetInt("WORKER_PRUNE_INTERVAL_MIN")) * time.Minute,
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Route.SampleIntervalMeters == 0 {
		cfg.Route.SampleIntervalMeters = 48000
	}
	if cfg.Weather.BaseURL == "" {
		cfg.Weather.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if cfg.Weather.RequestTimeout == 0 {
		cfg.Weather.RequestTimeout = 10
	}
	if cfg.Weather.MaxRetries == 0 {
		cfg.Weather.MaxRetries = 3
	}
	if cfg.Weather.InitialBackoff == 0 {
		cfg.Weather.InitialBackoff = 500 * time.Millisecond
	}
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://us1.locationiq.com/v1/search"
	}
	if cfg.Geocoding.RequestTimeout == 0 {
		cfg.Geocoding.RequestTimeout = 10
	}
	if cfg.Directions.BaseURL == "" {
		cfg.Directions.BaseURL = "https://api.openrouteservice.org"
	}
	if cfg.Directions.Profile == "" {
		cfg.Directions.Profile = "driving-car"
	}
	if cfg.Directions.RequestTimeout == 0 {
		cfg.Directions.RequestTimeout = 15
	}
	if cfg.Narrative.BaseURL == "" {
		cfg.Narrative.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Narrative.Model == "" {
		cfg.Narrative.Model = "openai/gpt-oss-120b:free"
	}
	if cfg.Narrative.RequestTimeout == 0 {
		cfg.Narrative.RequestTimeout = 30
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "report-archivers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.Retention == 0 {
		cfg.Worker.Retention = 30 * 24 * time.Hour
	}
	if cfg.Worker.PruneInterval == 0 {
		cfg.Worker.PruneInterval = time.Hour
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
