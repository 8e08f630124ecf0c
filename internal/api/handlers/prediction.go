package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/parkcast/parkcast-go/internal/datastore"
	"github.com/parkcast/parkcast-go/internal/models"
	"github.com/parkcast/parkcast-go/internal/services"
)

// PredictionHandler exposes the forecast engine over HTTP.
type PredictionHandler struct {
	predictions *services.PredictionService
	registry    datastore.LotRegistry
	logger      *logrus.Logger
}

// NewPredictionHandler creates a prediction handler.
func NewPredictionHandler(predictions *services.PredictionService, registry datastore.LotRegistry, logger *logrus.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictions: predictions,
		registry:    registry,
		logger:      logger,
	}
}

// PostPrediction handles POST /api/v1/predictions with a JSON request body.
func (h *PredictionHandler) PostPrediction(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "malformed request body: " + err.Error(),
			Code:  models.ErrCodeValidation,
		})
		return
	}
	h.respond(c, &req)
}

// GetPrediction handles GET /api/v1/predictions/:lotId with query parameters.
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	req := models.PredictionRequest{LotID: c.Param("lotId")}

	if raw := c.Query("target_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "target_time must be RFC 3339",
				Code:  models.ErrCodeValidation,
			})
			return
		}
		req.TargetTime = &t
	}

	if raw := c.Query("hours_ahead"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "hours_ahead must be numeric",
				Code:  models.ErrCodeValidation,
			})
			return
		}
		req.HoursAhead = hours
	}

	req.IncludeFeatures = c.Query("include_features") == "true"

	h.respond(c, &req)
}

// GetLots handles GET /api/v1/lots.
func (h *PredictionHandler) GetLots(c *gin.Context) {
	lots, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list lots")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "failed to list lots",
			Code:  models.ErrCodeInternal,
		})
		return
	}

	c.JSON(http.StatusOK, models.LotsResponse{
		Lots:      lots,
		Count:     len(lots),
		Timestamp: time.Now(),
	})
}

// respond runs the engine and maps the error taxonomy onto HTTP statuses.
// Internal failures never leak detail; reproducing context goes to the log.
func (h *PredictionHandler) respond(c *gin.Context, req *models.PredictionRequest) {
	resp, err := h.predictions.Timeline(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: err.Error(),
				Code:  models.ErrCodeValidation,
			})
		case errors.Is(err, datastore.ErrLotNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "unknown lot: " + req.LotID,
				Code:  models.ErrCodeNotFound,
			})
		default:
			h.logger.WithError(err).WithFields(logrus.Fields{
				"lot_id":      req.LotID,
				"target_time": req.TargetTime,
			}).Error("Prediction failed")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: "prediction failed",
				Code:  models.ErrCodeInternal,
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
