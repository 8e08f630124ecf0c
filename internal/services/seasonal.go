package services

import (
	"time"

	"github.com/parkcast/parkcast-go/internal/models"
)

// minSeasonalSamples is roughly one observation per hour across a week. Below
// this the decomposition is noise and the synthetic pattern takes over.
const minSeasonalSamples = 56

// defaultWeekdayPattern is the built-in synthetic hourly occupancy profile of
// a commuter lot on a class day: empty overnight, a steep morning ramp, a
// mid-morning-to-afternoon plateau, and an evening drain.
var defaultWeekdayPattern = [24]float64{
	5, 5, 5, 5, 5, 8, // 00-05
	20, 40, 60, 78, 85, 85, // 06-11
	85, 85, 82, 75, 62, 48, // 12-17
	35, 22, 15, 10, 8, 5, // 18-23
}

// defaultWeekendPattern keeps weekends uniformly quiet.
var defaultWeekendPattern = [24]float64{
	5, 5, 5, 5, 5, 5,
	6, 8, 10, 12, 15, 15,
	15, 15, 14, 12, 10, 10,
	8, 8, 6, 5, 5, 5,
}

// SeasonalModel forecasts occupancy by classical decomposition: a scalar
// level, a 24-slot hour-of-day component, and a 7-slot weekday component,
// recomputed per call from a trailing history window.
type SeasonalModel struct{}

// NewSeasonalModel creates a seasonal model.
func NewSeasonalModel() *SeasonalModel {
	return &SeasonalModel{}
}

type seasonalState struct {
	level   float64
	hourly  [24]float64
	weekday [7]float64
}

// Predict estimates occupancy at the target time from the history window.
// With too little history it decomposes the built-in synthetic weekly pattern
// instead, so new lots still get plausible output and the model never fails.
func (m *SeasonalModel) Predict(t time.Time, history []models.OccupancyReport) float64 {
	var values []float64
	var hours []int
	var weekdays []int

	for _, rep := range history {
		val, _ := rep.OccupancyPercent.Float64()
		values = append(values, val)
		hours = append(hours, rep.ReportedAt.Hour())
		weekdays = append(weekdays, int(rep.ReportedAt.Weekday()))
	}

	if len(values) < minSeasonalSamples {
		values, hours, weekdays = syntheticWeek()
	}

	state := decompose(values, hours, weekdays)
	estimate := state.level + state.hourly[t.Hour()] + state.weekday[int(t.Weekday())]
	return clamp(estimate, 0, 100)
}

// decompose splits the series into level, hourly offsets, and weekday offsets.
// Weekday offsets are deviations from level plus the hourly component, so the
// hour-of-day effect is not counted twice.
func decompose(values []float64, hours, weekdays []int) seasonalState {
	var state seasonalState
	state.level = mean(values)

	var hourSum [24]float64
	var hourCount [24]int
	for i, v := range values {
		hourSum[hours[i]] += v - state.level
		hourCount[hours[i]]++
	}
	for h := range state.hourly {
		if hourCount[h] > 0 {
			state.hourly[h] = hourSum[h] / float64(hourCount[h])
		}
	}

	var daySum [7]float64
	var dayCount [7]int
	for i, v := range values {
		expected := state.level + state.hourly[hours[i]]
		daySum[weekdays[i]] += v - expected
		dayCount[weekdays[i]]++
	}
	for d := range state.weekday {
		if dayCount[d] > 0 {
			state.weekday[d] = daySum[d] / float64(dayCount[d])
		}
	}

	return state
}

// syntheticWeek emits one sample per hour for a full week following the
// built-in commuter pattern.
func syntheticWeek() ([]float64, []int, []int) {
	values := make([]float64, 0, 7*24)
	hours := make([]int, 0, 7*24)
	weekdays := make([]int, 0, 7*24)

	for d := 0; d < 7; d++ {
		weekend := d == int(time.Saturday) || d == int(time.Sunday)
		for h := 0; h < 24; h++ {
			v := defaultWeekdayPattern[h]
			if weekend {
				v = defaultWeekendPattern[h]
			}
			values = append(values, v)
			hours = append(hours, h)
			weekdays = append(weekdays, d)
		}
	}
	return values, hours, weekdays
}
