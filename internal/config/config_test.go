package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "parkcast", cfg.Database.DBName)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "http://localhost:3002", cfg.Weather.ServiceURL)
	assert.False(t, cfg.Telemetry.Enabled)

	assert.Equal(t, 0.6, cfg.Prediction.GradientBoostedWeight)
	assert.Equal(t, 0.4, cfg.Prediction.SeasonalWeight)
	assert.Equal(t, 30, cfg.Prediction.StepMinutes)
	assert.Equal(t, 1.0, cfg.Prediction.DefaultHoursAhead)
	assert.Equal(t, 24.0, cfg.Prediction.MaxHoursAhead)
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := &Config{
		Prediction: PredictionConfig{
			GradientBoostedWeight: 0.6,
			SeasonalWeight:        0.6,
			StepMinutes:           30,
			DefaultHoursAhead:     1,
			MaxHoursAhead:         24,
		},
	}
	assert.Error(t, validate(cfg))
}

func TestValidate_StepMinutesMustBePositive(t *testing.T) {
	cfg := &Config{
		Prediction: PredictionConfig{
			GradientBoostedWeight: 0.6,
			SeasonalWeight:        0.4,
			StepMinutes:           0,
			DefaultHoursAhead:     1,
			MaxHoursAhead:         24,
		},
	}
	assert.Error(t, validate(cfg))
}

func TestValidate_MaxHoursAheadCoversDefault(t *testing.T) {
	cfg := &Config{
		Prediction: PredictionConfig{
			GradientBoostedWeight: 0.6,
			SeasonalWeight:        0.4,
			StepMinutes:           30,
			DefaultHoursAhead:     8,
			MaxHoursAhead:         4,
		},
	}
	assert.Error(t, validate(cfg))
}
