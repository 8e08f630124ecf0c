package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var captured string
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusOK)
	})
	return router, &captured
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	router, captured := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, header)
	assert.Equal(t, header, *captured)

	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestRequestID_HonorsCallerSupplied(t *testing.T) {
	router, captured := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "caller-id-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "caller-id-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "caller-id-123", *captured)
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	router, _ := newRouter()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		assert.False(t, seen[id], "request ID %s repeated", id)
		seen[id] = true
	}
}

func TestGetRequestID_MissingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
