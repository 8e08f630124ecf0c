package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// HealthChecker is anything with a pingable backing connection.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler reports service liveness and dependency status.
type HealthHandler struct {
	db      HealthChecker
	redis   HealthChecker
	version string
	started time.Time
	logger  *logrus.Logger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(db, redis HealthChecker, version string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		redis:   redis,
		version: version,
		started: time.Now(),
		logger:  logger,
	}
}

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Services  map[string]string `json:"services"`
	System    SystemStats       `json:"system"`
}

// SystemStats carries host resource usage.
type SystemStats struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	CPUPercent        float64 `json:"cpu_percent"`
}

// Health handles GET /health. Degraded dependencies demote the status but
// the endpoint itself always answers 200 while the process is alive.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	status := HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Services:  make(map[string]string),
	}

	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			h.logger.WithError(err).Warn("Database health check failed")
			status.Services["database"] = "unhealthy"
			status.Status = "degraded"
		} else {
			status.Services["database"] = "healthy"
		}
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err != nil {
			h.logger.WithError(err).Warn("Redis health check failed")
			status.Services["redis"] = "unhealthy"
			status.Status = "degraded"
		} else {
			status.Services["redis"] = "healthy"
		}
	}

	if memInfo, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.System.MemoryUsedPercent = memInfo.UsedPercent
	}
	if cpuPercents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(cpuPercents) > 0 {
		status.System.CPUPercent = cpuPercents[0]
	}

	c.JSON(http.StatusOK, status)
}
