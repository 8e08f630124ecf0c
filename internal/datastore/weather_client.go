package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/parkcast/parkcast-go/internal/config"
	"github.com/parkcast/parkcast-go/internal/models"
)

// WeatherClient talks to the campus weather microservice over HTTP.
type WeatherClient struct {
	HTTPClient *http.Client
	baseURL    string
}

type weatherResponse struct {
	TemperatureF      float64 `json:"temperature_f"`
	PrecipProbability float64 `json:"precip_probability"`
	WindSpeedMph      float64 `json:"wind_speed_mph"`
	IsRaining         bool    `json:"is_raining"`
}

type weatherErrorResponse struct {
	Error string `json:"error"`
}

// NewWeatherClient creates a new weather client instance.
func NewWeatherClient(cfg *config.WeatherConfig) *WeatherClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WeatherClient{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimSuffix(cfg.ServiceURL, "/"),
	}
}

// Forecast retrieves the forecast for a calendar date.
func (c *WeatherClient) Forecast(ctx context.Context, date time.Time) (*models.WeatherObservation, error) {
	path := fmt.Sprintf("/api/forecast/%s", date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp weatherErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error != "" {
			return nil, fmt.Errorf("weather service error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return nil, fmt.Errorf("weather service error (%d)", resp.StatusCode)
	}

	var payload weatherResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forecast: %w", err)
	}

	return &models.WeatherObservation{
		TemperatureF:      payload.TemperatureF,
		PrecipProbability: payload.PrecipProbability,
		WindSpeedMph:      payload.WindSpeedMph,
		IsRaining:         payload.IsRaining,
		ObservedAt:        date,
	}, nil
}
