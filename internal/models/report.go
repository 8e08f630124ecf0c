package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OccupancyReport represents a single crowd-sourced occupancy observation
type OccupancyReport struct {
	ID               string          `json:"id" db:"id"`
	LotID            string          `json:"lot_id" db:"lot_id"`
	OccupancyPercent decimal.Decimal `json:"occupancy_percent" db:"occupancy_percent"`
	ReportedAt       time.Time       `json:"reported_at" db:"reported_at"`
}

// CampusEventType enumerates the event kinds the predictor distinguishes.
type CampusEventType string

const (
	EventFootball   CampusEventType = "football"
	EventBasketball CampusEventType = "basketball"
	EventConcert    CampusEventType = "concert"
	EventGraduation CampusEventType = "graduation"
	EventOther      CampusEventType = "other"
)

// CampusEvent represents a scheduled campus event that affects parking demand
type CampusEvent struct {
	ID       string          `json:"id" db:"id"`
	Type     CampusEventType `json:"type" db:"type"`
	Title    string          `json:"title" db:"title"`
	StartsAt time.Time       `json:"starts_at" db:"starts_at"`
}

// WeatherObservation represents the daily forecast from the weather collaborator
type WeatherObservation struct {
	TemperatureF      float64   `json:"temperature_f"`
	PrecipProbability float64   `json:"precip_probability"`
	WindSpeedMph      float64   `json:"wind_speed_mph"`
	IsRaining         bool      `json:"is_raining"`
	ObservedAt        time.Time `json:"observed_at"`
}
