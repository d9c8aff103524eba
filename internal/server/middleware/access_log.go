package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/contexts"
	"github.com/looplj/jsonfixer/internal/log"
)

// AccessLog logs requests that failed or recorded errors.
// Successful requests are left to the repair outcome log.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		ctx := c.Request.Context()

		var errMsgs []string
		for _, e := range c.Errors {
			errMsgs = append(errMsgs, e.Error())
		}

		for _, e := range contexts.GetErrors(ctx) {
			errMsgs = append(errMsgs, e.Error())
		}

		status := c.Writer.Status()
		if status < 400 && len(errMsgs) == 0 {
			return
		}

		fields := []log.Field{
			log.Int("status", status),
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Duration("latency", time.Since(start)),
			log.String("client_ip", c.ClientIP()),
			log.Int64("content_length", c.Request.ContentLength),
		}

		if name, ok := contexts.GetAPIKeyName(ctx); ok {
			fields = append(fields, log.String("api_key", name))
		}

		if len(errMsgs) > 0 {
			fields = append(fields, log.Strings("errors", errMsgs))
		}

		if status >= 500 {
			log.Error(ctx, "[ACCESS]", fields...)
		} else {
			log.Warn(ctx, "[ACCESS]", fields...)
		}
	}
}
