package services

import (
	"github.com/parkcast/parkcast-go/internal/models"
)

// Confidence scoring tunables. Increments are bounded and the final score is
// clamped so the engine is never fully certain nor fully unreliable.
const (
	confidenceBase  = 0.5
	confidenceFloor = 0.3
	confidenceCeil  = 0.95

	confRealtimeBonus    = 0.2  // fresh, plentiful crowd reports
	confReportBonus      = 0.1  // at least reportCountThreshold reports
	confStabilityBonus   = 0.1  // low historical volatility
	confBaselineBonus    = 0.05 // real (non-default) historical baseline
	confEventPenalty     = 0.1  // special events diverge from seasonality
	confFirstWeekPenalty = 0.1  // first week of semester is atypical

	reportCountThreshold   = 3
	realtimeConfThreshold  = 0.6
	lowVolatilityThreshold = 10.0
)

// Interval width tunables: wider bounds for low confidence or volatile lots.
const (
	boundConfidenceScale = 25.0
	boundVolatilityScale = 0.5
)

// Status thresholds on the point estimate.
const (
	statusFullThreshold    = 95.0
	statusFillingThreshold = 80.0
	statusBusyThreshold    = 60.0
)

// EnsembleCombiner blends the two model outputs into the full prediction
// result: point estimate, confidence, bounds, status, chance of spot, and
// factor attribution.
type EnsembleCombiner struct {
	gbWeight float64
	tsWeight float64
}

// NewEnsembleCombiner creates a combiner with the given blend weights. The
// default weighting favors the gradient-boosted model: explicit contextual
// features generally beat bare seasonality.
func NewEnsembleCombiner(gbWeight, tsWeight float64) *EnsembleCombiner {
	return &EnsembleCombiner{gbWeight: gbWeight, tsWeight: tsWeight}
}

// Combine produces the prediction result for one timeline step.
func (ec *EnsembleCombiner) Combine(gb, ts float64, rec *models.FeatureRecord) models.PredictionResult {
	estimate := clamp(ec.gbWeight*gb+ec.tsWeight*ts, 0, 100)
	confidence := ec.confidence(rec)
	halfWidth := (1-confidence)*boundConfidenceScale + rec.HistoricalVolatility*boundVolatilityScale

	return models.PredictionResult{
		LotID:              rec.LotID,
		TargetTime:         rec.TargetTime,
		PredictedOccupancy: estimate,
		Confidence:         confidence,
		ConfidenceTier:     tierFor(confidence),
		LowerBound:         clamp(estimate-halfWidth, 0, 100),
		UpperBound:         clamp(estimate+halfWidth, 0, 100),
		Status:             statusFor(estimate),
		ChanceOfSpot:       chanceOfSpot(estimate),
		ModelOutputs: models.ModelOutputs{
			GradientBoosted: gb,
			Seasonal:        ts,
		},
		Factors: attribution(rec),
	}
}

// confidence starts at the base and adds bounded increments per corroborating
// signal, subtracting for conditions that historically diverge from the
// seasonal pattern.
func (ec *EnsembleCombiner) confidence(rec *models.FeatureRecord) float64 {
	score := confidenceBase

	if rec.RealtimeConfidence >= realtimeConfThreshold {
		score += confRealtimeBonus
	}
	if rec.ReportCount >= reportCountThreshold {
		score += confReportBonus
	}
	if rec.HasHistory && rec.HistoricalVolatility < lowVolatilityThreshold {
		score += confStabilityBonus
	}
	if rec.HasHistory {
		score += confBaselineBonus
	}
	if rec.HasAnyEvent {
		score -= confEventPenalty
	}
	if rec.IsFirstWeek {
		score -= confFirstWeekPenalty
	}

	return clamp(score, confidenceFloor, confidenceCeil)
}

func tierFor(confidence float64) models.ConfidenceTier {
	switch {
	case confidence >= 0.85:
		return models.TierVerified
	case confidence >= 0.7:
		return models.TierHigh
	case confidence >= 0.5:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

func statusFor(occupancy float64) models.LotStatus {
	switch {
	case occupancy >= statusFullThreshold:
		return models.StatusFull
	case occupancy >= statusFillingThreshold:
		return models.StatusFilling
	case occupancy >= statusBusyThreshold:
		return models.StatusBusy
	default:
		return models.StatusOpen
	}
}

// chanceOfSpot is a step function, not 100-occupancy: availability collapses
// faster than linearly near capacity because the last free spots churn.
func chanceOfSpot(occupancy float64) float64 {
	switch {
	case occupancy >= 98:
		return 2
	case occupancy >= 95:
		return 5
	case occupancy >= 90:
		return 15
	case occupancy >= 80:
		return 35
	case occupancy >= 70:
		return 55
	case occupancy >= 60:
		return 70
	case occupancy >= 40:
		return 85
	default:
		return 95
	}
}

// attribution explains each factor group from the same feature values used for
// the prediction, so the displayed explanation always agrees with the number.
func attribution(rec *models.FeatureRecord) models.FactorAttribution {
	var f models.FactorAttribution

	switch {
	case rec.IsWeekend:
		f.Time = -20
	case rec.IsClassDay && rec.Hour >= 8 && rec.Hour <= 16:
		f.Time = 20
	case rec.Hour < 7 || rec.Hour > 19:
		f.Time = -15
	default:
		f.Time = 5
	}

	f.Event = rec.EventImpact * 0.3
	f.Weather = rec.WeatherImpact * 0.4

	if rec.HasHistory {
		f.Historical = (rec.SameTimeAverage - DefaultHistoricalAverage) * 0.4
	}
	if rec.ReportCount > 0 {
		f.Realtime = (rec.LatestReport - DefaultHistoricalAverage) * rec.RealtimeConfidence * 0.3
	}

	return f
}
