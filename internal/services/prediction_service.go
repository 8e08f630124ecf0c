package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/parkcast/parkcast-go/internal/config"
	"github.com/parkcast/parkcast-go/internal/models"
)

// ErrInvalidRequest marks malformed requests. Wrapped with detail; surfaced to
// callers as a validation failure, never retried.
var ErrInvalidRequest = errors.New("invalid request")

// PredictionService orchestrates the prediction pipeline: one collaborator
// snapshot per request, then feature extraction and both models per timeline
// step. Stateless and request-scoped; any number of requests run in parallel.
type PredictionService struct {
	extractor *FeatureExtractor
	gbModel   *GradientBoostedModel
	seasonal  *SeasonalModel
	combiner  *EnsembleCombiner
	cfg       config.PredictionConfig
	logger    *logrus.Logger
	tracer    trace.Tracer
}

// NewPredictionService wires the engine components together.
func NewPredictionService(
	extractor *FeatureExtractor,
	gbModel *GradientBoostedModel,
	combiner *EnsembleCombiner,
	cfg config.PredictionConfig,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		extractor: extractor,
		gbModel:   gbModel,
		seasonal:  NewSeasonalModel(),
		combiner:  combiner,
		cfg:       cfg,
		logger:    logger,
		tracer:    otel.Tracer("parkcast.prediction"),
	}
}

// ModelVersion reports the version of the loaded forest.
func (s *PredictionService) ModelVersion() string {
	return s.gbModel.Version()
}

// Timeline produces the ordered forecast for a lot: one prediction per step
// from the target time through target+horizon inclusive. An unknown lot fails
// the whole request; degraded collaborators degrade quality, not availability.
func (s *PredictionService) Timeline(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	target := time.Now()
	if req.TargetTime != nil {
		target = *req.TargetTime
	}
	hoursAhead := req.HoursAhead
	if hoursAhead == 0 {
		hoursAhead = s.cfg.DefaultHoursAhead
	}

	step := time.Duration(s.cfg.StepMinutes) * time.Minute
	horizon := time.Duration(hoursAhead * float64(time.Hour))
	steps := int(horizon/step) + 1

	ctx, span := s.tracer.Start(ctx, "prediction.timeline", trace.WithAttributes(
		attribute.String("lot.id", req.LotID),
		attribute.Int("timeline.steps", steps),
	))
	defer span.End()

	snap, err := s.extractor.Snapshot(ctx, req.LotID, target, target.Add(horizon))
	if err != nil {
		return nil, err
	}

	predictions := make([]models.PredictionResult, 0, steps)
	for i := 0; i < steps; i++ {
		// Honor the caller deadline rather than computing a timeline that
		// will be discarded.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stepTime := target.Add(time.Duration(i) * step)
		rec := s.extractor.Extract(stepTime, snap)
		gb := s.gbModel.Predict(rec.Vector())
		ts := s.seasonal.Predict(stepTime, snap.Historical)

		result := s.combiner.Combine(gb, ts, rec)
		if req.IncludeFeatures {
			result.Features = rec
		}
		predictions = append(predictions, result)
	}

	s.logger.WithFields(logrus.Fields{
		"lot_id":      snap.Lot.ID,
		"target_time": target,
		"steps":       steps,
	}).Debug("Timeline generated")

	return &models.PredictionResponse{
		LotID:        snap.Lot.ID,
		LotName:      snap.Lot.Name,
		ModelVersion: s.gbModel.Version(),
		GeneratedAt:  time.Now(),
		Predictions:  predictions,
	}, nil
}

func (s *PredictionService) validate(req *models.PredictionRequest) error {
	if req == nil || req.LotID == "" {
		return fmt.Errorf("%w: lot_id is required", ErrInvalidRequest)
	}
	if math.IsNaN(req.HoursAhead) || math.IsInf(req.HoursAhead, 0) {
		return fmt.Errorf("%w: hours_ahead must be a finite number", ErrInvalidRequest)
	}
	if req.HoursAhead < 0 {
		return fmt.Errorf("%w: hours_ahead must be non-negative", ErrInvalidRequest)
	}
	if req.HoursAhead > s.cfg.MaxHoursAhead {
		return fmt.Errorf("%w: hours_ahead exceeds maximum of %0.0f", ErrInvalidRequest, s.cfg.MaxHoursAhead)
	}
	return nil
}
