package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/parkcast/parkcast-go/internal/api/handlers"
	"github.com/parkcast/parkcast-go/internal/middleware"
)

// SetupRoutes wires the HTTP surface onto the router.
func SetupRoutes(router *gin.Engine, prediction *handlers.PredictionHandler, health *handlers.HealthHandler, serviceName string, logger *logrus.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/health"
	})))

	router.GET("/health", health.Health)

	v1 := router.Group("/api/v1")
	{
		predictions := v1.Group("/predictions")
		{
			predictions.POST("", prediction.PostPrediction)
			predictions.GET("/:lotId", prediction.GetPrediction)
		}

		v1.GET("/lots", prediction.GetLots)
	}
}
