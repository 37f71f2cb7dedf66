package openroute

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weather-microservice/internal/config"
	"github.com/weather-microservice/internal/domain"
	apperrors "github.com/weather-microservice/internal/pkg/errors"
)

func newTestClient(serverURL string) *client {
	cfg := &config.DirectionsConfig{
		BaseURL:        serverURL,
		APIKey:         "test_key",
		Profile:        "driving-car",
		RequestTimeout: 5,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_GetRoute(t *testing.T) {
	start := domain.Coordinate{Lat: 41.3851, Lon: 2.1734}
	end := domain.Coordinate{Lat: 40.4168, Lon: -3.7038}

	t.Run("successful request flips lon-lat order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v2/directions/driving-car/geojson", r.URL.Path)
			assert.Equal(t, "test_key", r.Header.Get("Authorization"))

			var body struct {
				Coordinates [][2]float64 `json:"coordinates"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Coordinates, 2)
			assert.Equal(t, [2]float64{2.1734, 41.3851}, body.Coordinates[0])

			w.Write([]byte(`{
				"features": [{
					"geometry": {
						"coordinates": [[2.1734, 41.3851], [1.5, 41.0], [-3.7038, 40.4168]]
					}
				}]
			}`))
		}))
		defer server.Close()

		route, err := newTestClient(server.URL).GetRoute(context.Background(), start, end)
		require.NoError(t, err)
		require.Len(t, route, 3)
		assert.Equal(t, domain.Coordinate{Lat: 41.3851, Lon: 2.1734}, route[0])
		assert.Equal(t, domain.Coordinate{Lat: 40.4168, Lon: -3.7038}, route[2])
	})

	t.Run("no features", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"features": []}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetRoute(context.Background(), start, end)
		assert.Equal(t, apperrors.ErrDirectionsFailed, err)
	})

	t.Run("provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GetRoute(context.Background(), start, end)
		assert.Equal(t, apperrors.ErrDirectionsFailed, err)
	})
}
