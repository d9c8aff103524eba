package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/tracing"
)

// WithLoggingTracing stores the trace and request ids in the request context so every
// later log line carries them. The trace id is taken from the request when present.
func WithLoggingTracing(config tracing.Config) gin.HandlerFunc {
	traceHeader := config.TraceHeader
	if traceHeader == "" {
		traceHeader = tracing.DefaultTraceHeader
	}

	requestHeader := config.RequestHeader
	if requestHeader == "" {
		requestHeader = tracing.DefaultRequestHeader
	}

	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if traceID == "" {
			traceID = tracing.GenerateTraceID()
		}

		requestID := tracing.GenerateRequestID()

		c.Header(traceHeader, traceID)
		c.Header(requestHeader, requestID)

		ctx := tracing.WithTraceID(c.Request.Context(), traceID)
		ctx = tracing.WithRequestID(ctx, requestID)
		ctx = tracing.WithOperationName(ctx, fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()))

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
