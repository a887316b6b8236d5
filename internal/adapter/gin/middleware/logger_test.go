package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storefront-api/internal/adapter/gin/middleware"
	"storefront-api/pkg/logger"
)

// TestLogger_MintsIDs verifies that requests without tracking headers get
// generated request and correlation IDs, echoed on the response and
// available in the request context.
func TestLogger_MintsIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var ctxRequestID, ctxCorrelationID string
	r := gin.New()
	r.Use(middleware.Logger(zaptest.NewLogger(t)))
	r.GET("/ping", func(c *gin.Context) {
		ctxRequestID = logger.GetRequestID(c.Request.Context())
		ctxCorrelationID = logger.GetCorrelationID(c.Request.Context())
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader))
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), ctxRequestID)
	assert.Equal(t, w.Header().Get(middleware.CorrelationIDHeader), ctxCorrelationID)
}

// TestLogger_PropagatesIncomingIDs verifies that caller-supplied tracking
// headers are kept rather than replaced.
func TestLogger_PropagatesIncomingIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.Logger(zaptest.NewLogger(t)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	req.Header.Set(middleware.CorrelationIDHeader, "corr-456")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "corr-456", w.Header().Get(middleware.CorrelationIDHeader))
}

// TestRecovery_Returns500 verifies that a handler panic becomes a clean 500
// response instead of a dropped connection.
func TestRecovery_Returns500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.Recovery(zaptest.NewLogger(t)))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.NotContains(t, w.Body.String(), "kaboom")
}
