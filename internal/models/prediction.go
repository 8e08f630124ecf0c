package models

import "time"

// LotStatus is the ordinal display category derived from the point estimate.
type LotStatus string

const (
	StatusOpen    LotStatus = "open"
	StatusBusy    LotStatus = "busy"
	StatusFilling LotStatus = "filling"
	StatusFull    LotStatus = "full"
)

// ConfidenceTier summarizes the continuous confidence score for display.
type ConfidenceTier string

const (
	TierLow      ConfidenceTier = "low"
	TierMedium   ConfidenceTier = "medium"
	TierHigh     ConfidenceTier = "high"
	TierVerified ConfidenceTier = "verified"
)

// ModelOutputs carries the raw per-model estimates before blending
type ModelOutputs struct {
	GradientBoosted float64 `json:"gradient_boosted"`
	Seasonal        float64 `json:"seasonal"`
}

// FactorAttribution explains each feature group's contribution to the
// prediction. Computed from the same feature values used for the estimate so
// the displayed explanation cannot drift from the displayed number.
type FactorAttribution struct {
	Time       float64 `json:"time"`
	Event      float64 `json:"event"`
	Weather    float64 `json:"weather"`
	Historical float64 `json:"historical"`
	Realtime   float64 `json:"realtime"`
}

// PredictionResult is the full prediction for one (lot, time) pair
type PredictionResult struct {
	LotID              string             `json:"lot_id"`
	TargetTime         time.Time          `json:"target_time"`
	PredictedOccupancy float64            `json:"predicted_occupancy"`
	Confidence         float64            `json:"confidence"`
	ConfidenceTier     ConfidenceTier     `json:"confidence_tier"`
	LowerBound         float64            `json:"lower_bound"`
	UpperBound         float64            `json:"upper_bound"`
	Status             LotStatus          `json:"status"`
	ChanceOfSpot       float64            `json:"chance_of_spot"`
	ModelOutputs       ModelOutputs       `json:"model_outputs"`
	Factors            FactorAttribution  `json:"factors"`
	Features           *FeatureRecord     `json:"features,omitempty"`
}

// PredictionRequest represents request parameters for a forecast timeline
type PredictionRequest struct {
	LotID           string     `json:"lot_id" form:"lot_id"`
	TargetTime      *time.Time `json:"target_time,omitempty" form:"target_time"`
	HoursAhead      float64    `json:"hours_ahead,omitempty" form:"hours_ahead"`
	IncludeFeatures bool       `json:"include_features,omitempty" form:"include_features"`
}

// PredictionResponse represents the response for a forecast timeline
type PredictionResponse struct {
	LotID        string             `json:"lot_id"`
	LotName      string             `json:"lot_name"`
	ModelVersion string             `json:"model_version"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Predictions  []PredictionResult `json:"predictions"`
}

// ErrorResponse is the structured error body for all failure modes
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes surfaced to callers.
const (
	ErrCodeValidation = "validation"
	ErrCodeNotFound   = "not_found"
	ErrCodeInternal   = "internal"
)
