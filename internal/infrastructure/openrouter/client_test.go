package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weather-microservice/internal/config"
	"github.com/weather-microservice/internal/domain"
	apperrors "github.com/weather-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.NarrativeConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		Model:          "openai/gpt-oss-120b:free",
		RequestTimeout: 5,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestDescribeDaily(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req chatRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "openai/gpt-oss-120b:free", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, "Barcelona, Catalonia")
		assert.Contains(t, req.Messages[0].Content, "10-03-2025")

		w.Write([]byte(`{"choices":[{"message":{"content":"A mild week ahead with light winds."}}]}`))
	})

	days := []domain.DailyObservation{
		{Date: "10-03-2025", Condition: "Clear sky", MaxTemp: 18.2, MinTemp: 7.5},
	}
	text, err := c.DescribeDaily(context.Background(), days, "Barcelona, Catalonia")
	require.NoError(t, err)
	assert.Equal(t, "A mild week ahead with light winds.", text)
}

func TestDescribeDriveIncludesEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		require.NoError(t, json.Unmarshal(body, &req))

		content := req.Messages[0].Content
		assert.Contains(t, content, "Barcelona, Spain to Madrid, Spain")
		assert.True(t, strings.Contains(content, "comfort_score") || strings.Contains(content, "ComfortScore"))

		w.Write([]byte(`{"choices":[{"message":{"content":"Expect a dry and easy drive."}}]}`))
	})

	report := &domain.ComfortReport{ComfortScore: 87, IsDay: true}
	start := &domain.Location{DisplayName: "Barcelona, Spain"}
	end := &domain.Location{DisplayName: "Madrid, Spain"}

	text, err := c.DescribeDrive(context.Background(), report, start, end)
	require.NoError(t, err)
	assert.Equal(t, "Expect a dry and easy drive.", text)
}

func TestChatEmptyCompletion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.DescribeCurrent(context.Background(), &domain.CurrentObservation{}, "Barcelona")
	assert.ErrorIs(t, err, apperrors.ErrDescriptionFailed)
}

func TestChatUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.DescribeHourly(context.Background(), nil, "Barcelona")
	assert.ErrorIs(t, err, apperrors.ErrDescriptionFailed)
}
