package datastore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkcast/parkcast-go/internal/config"
)

func TestWeatherClient_Forecast(t *testing.T) {
	date := time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forecast/2025-10-07", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"temperature_f": 41.5, "precip_probability": 0.6, "wind_speed_mph": 12, "is_raining": true}`))
	}))
	defer server.Close()

	client := NewWeatherClient(&config.WeatherConfig{ServiceURL: server.URL, Timeout: 5})
	obs, err := client.Forecast(context.Background(), date)
	require.NoError(t, err)

	assert.Equal(t, 41.5, obs.TemperatureF)
	assert.Equal(t, 0.6, obs.PrecipProbability)
	assert.Equal(t, 12.0, obs.WindSpeedMph)
	assert.True(t, obs.IsRaining)
	assert.Equal(t, date, obs.ObservedAt)
}

func TestWeatherClient_ForecastServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "station offline"}`))
	}))
	defer server.Close()

	client := NewWeatherClient(&config.WeatherConfig{ServiceURL: server.URL, Timeout: 5})
	obs, err := client.Forecast(context.Background(), time.Now())

	assert.Nil(t, obs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "station offline")
}

func TestWeatherClient_ForecastUnreachable(t *testing.T) {
	client := NewWeatherClient(&config.WeatherConfig{ServiceURL: "http://127.0.0.1:1", Timeout: 1})
	_, err := client.Forecast(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestNewWeatherClient_DefaultTimeout(t *testing.T) {
	client := NewWeatherClient(&config.WeatherConfig{ServiceURL: "http://localhost:3002"})
	assert.Equal(t, 10*time.Second, client.HTTPClient.Timeout)
}
