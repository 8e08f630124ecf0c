package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LotCategory classifies a lot by the population it serves.
type LotCategory string

const (
	CategoryCommuter  LotCategory = "commuter"
	CategoryResidence LotCategory = "residence"
	CategoryGarage    LotCategory = "garage"
	CategoryOther     LotCategory = "other"
)

// ParkingLot represents a campus parking lot from the registry
type ParkingLot struct {
	ID                string          `json:"id" db:"id"`
	Name              string          `json:"name" db:"name"`
	Area              string          `json:"area" db:"area"`
	Capacity          int             `json:"capacity" db:"capacity"`
	OccupancyFraction decimal.Decimal `json:"occupancy_fraction" db:"occupancy_fraction"`
	Category          LotCategory     `json:"category"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// CategoryFromID derives the lot category from the campus naming convention:
// C-prefixed lots are commuter, R-prefixed residence, G-prefixed garages.
func CategoryFromID(lotID string) LotCategory {
	id := strings.ToUpper(strings.TrimSpace(lotID))
	switch {
	case strings.HasPrefix(id, "C"):
		return CategoryCommuter
	case strings.HasPrefix(id, "R"):
		return CategoryResidence
	case strings.HasPrefix(id, "G"):
		return CategoryGarage
	default:
		return CategoryOther
	}
}

// LotOccupancy is one entry of the campus-wide cross-lot snapshot
type LotOccupancy struct {
	LotID             string          `json:"lot_id"`
	Area              string          `json:"area"`
	OccupancyFraction decimal.Decimal `json:"occupancy_fraction"`
}

// LotsResponse represents the response for the lot listing endpoint
type LotsResponse struct {
	Lots      []ParkingLot `json:"lots"`
	Count     int          `json:"count"`
	Timestamp time.Time    `json:"timestamp"`
}
