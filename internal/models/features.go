package models

import "time"

// FeatureCount is the fixed length of the numeric feature vector.
const FeatureCount = 46

// MissingValue is the sentinel for optional features with no observation.
// The vector stays fully numeric: booleans encode as 0/1, absences as -1.
const MissingValue = -1

// FeatureRecord is the named form of the feature vector for a (lot, time) pair.
// It is a pure function of the lot, the target timestamp, and the external
// snapshot taken at extraction time; no hidden state.
type FeatureRecord struct {
	LotID      string    `json:"lot_id"`
	TargetTime time.Time `json:"target_time"`

	// Temporal
	Hour       int     `json:"hour"`
	Minute     int     `json:"minute"`
	DayOfMonth int     `json:"day_of_month"`
	WeekOfYear int     `json:"week_of_year"`
	Month      int     `json:"month"`
	DayOfWeek  int     `json:"day_of_week"`
	DayOfYear  int     `json:"day_of_year"`
	IsWeekend  bool    `json:"is_weekend"`
	HourSin    float64 `json:"hour_sin"`
	HourCos    float64 `json:"hour_cos"`
	DaySin     float64 `json:"day_sin"`
	DayCos     float64 `json:"day_cos"`

	// Academic calendar
	IsClassDay       bool `json:"is_class_day"`
	IsFinalsWeek     bool `json:"is_finals_week"`
	IsFirstWeek      bool `json:"is_first_week"`
	IsSpringBreak    bool `json:"is_spring_break"`
	IsSummerSession  bool `json:"is_summer_session"`
	DaysIntoSemester int  `json:"days_into_semester"`

	// Events
	HasFootball   bool    `json:"has_football"`
	HasBasketball bool    `json:"has_basketball"`
	HasConcert    bool    `json:"has_concert"`
	HasGraduation bool    `json:"has_graduation"`
	HasAnyEvent   bool    `json:"has_any_event"`
	EventCount    int     `json:"event_count"`
	EventImpact   float64 `json:"event_impact"`

	// Weather
	TemperatureF  float64 `json:"temperature_f"`
	PrecipProb    float64 `json:"precip_prob"`
	IsRaining     bool    `json:"is_raining"`
	WindSpeedMph  float64 `json:"wind_speed_mph"`
	WeatherImpact float64 `json:"weather_impact"`

	// Historical
	SameTimeAverage      float64 `json:"same_time_average"`
	HistoricalVolatility float64 `json:"historical_volatility"`
	HistoricalTrend      float64 `json:"historical_trend"`
	HasHistory           bool    `json:"has_history"`

	// Real-time crowd reports
	ReportCount        int     `json:"report_count"`
	ReportAverage      float64 `json:"report_average"`
	MinutesSinceReport float64 `json:"minutes_since_report"`
	RealtimeConfidence float64 `json:"realtime_confidence"`
	LatestReport       float64 `json:"latest_report"`

	// Lot-specific
	Capacity          int     `json:"capacity"`
	OccupancyFraction float64 `json:"occupancy_fraction"`
	IsCommuter        bool    `json:"is_commuter"`
	IsResidence       bool    `json:"is_residence"`
	IsGarage          bool    `json:"is_garage"`

	// Cross-lot
	AreaAverageOccupancy   float64 `json:"area_average_occupancy"`
	CampusAverageOccupancy float64 `json:"campus_average_occupancy"`
}

// Vector flattens the record into its fixed-order numeric array. The order is
// part of the model contract: decision forest feature indices refer to positions
// in this array and must not be reordered without retraining.
func (f *FeatureRecord) Vector() []float64 {
	return []float64{
		// temporal (0-11)
		float64(f.Hour),
		float64(f.Minute),
		float64(f.DayOfMonth),
		float64(f.WeekOfYear),
		float64(f.Month),
		float64(f.DayOfWeek),
		float64(f.DayOfYear),
		boolToFloat(f.IsWeekend),
		f.HourSin,
		f.HourCos,
		f.DaySin,
		f.DayCos,
		// academic (12-17)
		boolToFloat(f.IsClassDay),
		boolToFloat(f.IsFinalsWeek),
		boolToFloat(f.IsFirstWeek),
		boolToFloat(f.IsSpringBreak),
		boolToFloat(f.IsSummerSession),
		float64(f.DaysIntoSemester),
		// events (18-24)
		boolToFloat(f.HasFootball),
		boolToFloat(f.HasBasketball),
		boolToFloat(f.HasConcert),
		boolToFloat(f.HasGraduation),
		boolToFloat(f.HasAnyEvent),
		float64(f.EventCount),
		f.EventImpact,
		// weather (25-29)
		f.TemperatureF,
		f.PrecipProb,
		boolToFloat(f.IsRaining),
		f.WindSpeedMph,
		f.WeatherImpact,
		// historical (30-33)
		f.SameTimeAverage,
		f.HistoricalVolatility,
		f.HistoricalTrend,
		boolToFloat(f.HasHistory),
		// real-time (34-38)
		float64(f.ReportCount),
		f.ReportAverage,
		f.MinutesSinceReport,
		f.RealtimeConfidence,
		f.LatestReport,
		// lot (39-43)
		float64(f.Capacity),
		f.OccupancyFraction,
		boolToFloat(f.IsCommuter),
		boolToFloat(f.IsResidence),
		boolToFloat(f.IsGarage),
		// cross-lot (44-45)
		f.AreaAverageOccupancy,
		f.CampusAverageOccupancy,
	}
}

// Feature vector indices referenced by the default decision forest.
const (
	FeatHour              = 0
	FeatDayOfWeek         = 5
	FeatIsWeekend         = 7
	FeatIsClassDay        = 12
	FeatIsFinalsWeek      = 13
	FeatDaysIntoSemester  = 17
	FeatHasAnyEvent       = 22
	FeatEventImpact       = 24
	FeatIsRaining         = 27
	FeatWeatherImpact     = 29
	FeatSameTimeAverage   = 30
	FeatHistoricalTrend   = 32
	FeatReportCount       = 34
	FeatReportAverage     = 35
	FeatRealtimeConf      = 37
	FeatLatestReport      = 38
	FeatOccupancyFraction = 40
	FeatIsCommuter        = 41
	FeatAreaAverage       = 44
	FeatCampusAverage     = 45
)

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
