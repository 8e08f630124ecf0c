package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/parkcast/parkcast-go/internal/models"
)

func TestSeasonalModel_EmptyHistoryStaysInRange(t *testing.T) {
	model := NewSeasonalModel()

	for hour := 0; hour < 24; hour++ {
		for day := 0; day < 7; day++ {
			target := time.Date(2025, 10, 5+day, hour, 0, 0, 0, time.UTC)
			got := model.Predict(target, nil)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	}
}

func TestSeasonalModel_SyntheticPatternShape(t *testing.T) {
	model := NewSeasonalModel()

	// Tuesday October 7 2025: mid-morning peak, overnight trough, quiet weekend.
	midMorning := model.Predict(time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC), nil)
	overnight := model.Predict(time.Date(2025, 10, 7, 3, 0, 0, 0, time.UTC), nil)
	weekend := model.Predict(time.Date(2025, 10, 11, 10, 0, 0, 0, time.UTC), nil)

	assert.Greater(t, midMorning, 50.0)
	assert.Less(t, overnight, 20.0)
	assert.Less(t, weekend, midMorning-20)
}

func TestSeasonalModel_SparseHistoryFallsBackToSynthetic(t *testing.T) {
	model := NewSeasonalModel()
	target := time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC)

	// A handful of reports is below the decomposition threshold, so the output
	// must match the synthetic baseline exactly.
	sparse := []models.OccupancyReport{
		report("C4", 95, target.AddDate(0, 0, -7)),
		report("C4", 97, target.AddDate(0, 0, -14)),
	}

	assert.Equal(t, model.Predict(target, nil), model.Predict(target, sparse))
}

func TestSeasonalModel_LearnsHourlyPattern(t *testing.T) {
	model := NewSeasonalModel()

	// Two weeks of hourly observations for a lot that inverts the synthetic
	// pattern: packed overnight, empty at midday.
	var history []models.OccupancyReport
	base := time.Date(2025, 9, 22, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 14; d++ {
		for h := 0; h < 24; h++ {
			occupancy := 90.0
			if h >= 9 && h <= 15 {
				occupancy = 10.0
			}
			history = append(history, report("R2", occupancy, base.AddDate(0, 0, d).Add(time.Duration(h)*time.Hour)))
		}
	}

	target := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	night := model.Predict(target.Add(2*time.Hour), history)
	midday := model.Predict(target.Add(12*time.Hour), history)

	assert.Greater(t, night, 70.0)
	assert.Less(t, midday, 30.0)
}

func TestSeasonalModel_Deterministic(t *testing.T) {
	model := NewSeasonalModel()
	target := time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC)

	var history []models.OccupancyReport
	base := target.AddDate(0, 0, -14)
	for i := 0; i < 100; i++ {
		history = append(history, report("C4", float64(30+i%40), base.Add(time.Duration(i)*time.Hour)))
	}

	assert.Equal(t, model.Predict(target, history), model.Predict(target, history))
}
