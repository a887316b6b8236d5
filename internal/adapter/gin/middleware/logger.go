package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-api/pkg/logger"
)

const (
	// RequestIDHeader carries the per-request ID.
	RequestIDHeader = "X-Request-ID"
	// CorrelationIDHeader carries the cross-service correlation ID.
	CorrelationIDHeader = "X-Correlation-ID"
)

// Logger returns middleware that assigns request and correlation IDs,
// echoes them on the response, stores them in the request context for
// downstream log enrichment, and logs request start and completion.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)
		ctx = context.WithValue(ctx, logger.CorrelationIDKey, correlationID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestIDHeader, requestID)
		c.Header(CorrelationIDHeader, correlationID)

		reqLog := log.With(
			zap.String("request_id", requestID),
			zap.String("correlation_id", correlationID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)

		reqLog.Info("HTTP request started")

		c.Next()

		reqLog.Info("HTTP request completed",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Int("response_size", c.Writer.Size()),
		)
	}
}
