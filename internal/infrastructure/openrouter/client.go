package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
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
	model      string
	logger     *zap.Logger
}

// NewClient создает клиент OpenRouter для генерации описаний погоды
func NewClient(cfg *config.NarrativeConfig, logger *zap.Logger) repository.NarrativeRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) DescribeDrive(ctx context.Context, report *domain.ComfortReport, start, end *domain.Location) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}
	prompt := fmt.Sprintf(driveWeatherPrompt, start.DisplayName, end.DisplayName, string(data))
	return c.chat(ctx, prompt)
}

func (c *client) DescribeCurrent(ctx context.Context, obs *domain.CurrentObservation, location string) (string, error) {
	data, err := json.Marshal(obs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}
	prompt := fmt.Sprintf(currentWeatherPrompt, location, string(data))
	return c.chat(ctx, prompt)
}

func (c *client) DescribeDaily(ctx context.Context, observations []domain.DailyObservation, location string) (string, error) {
	data, err := json.Marshal(observations)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}
	prompt := fmt.Sprintf(dailyWeatherPrompt, location, string(data))
	return c.chat(ctx, prompt)
}

func (c *client) DescribeHourly(ctx context.Context, observations []domain.HourlyObservation, location string) (string, error) {
	data, err := json.Marshal(observations)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}
	prompt := fmt.Sprintf(hourlyWeatherPrompt, location, string(data))
	return c.chat(ctx, prompt)
}

// chat отправляет один промпт в chat completions API и возвращает текст ответа
func (c *client) chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}

	reqURL := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("OpenRouter request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("OpenRouter returned unexpected status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", apperrors.ErrDescriptionFailed, resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrDescriptionFailed, err)
	}

	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", apperrors.ErrDescriptionFailed)
	}
	return payload.Choices[0].Message.Content, nil
}
