package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/pkg/log"
	"go.uber.org/zap"
)

const correlationHeader = "X-Correlation-ID"

// RequestLogger attaches a correlation ID to each request context and logs
// the request once it completes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("http")
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if header := c.GetHeader(correlationHeader); header != "" {
			ctx = log.ContextWithCorrelationID(ctx, header)
		}
		ctx, cid := log.EnsureCorrelationID(ctx)
		c.Request = c.Request.WithContext(ctx)
		c.Header(correlationHeader, cid)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("correlation_id", cid),
			zap.String("client_ip", c.ClientIP()),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.Error(lastErr.Err))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request completed", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request completed", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	}
}
