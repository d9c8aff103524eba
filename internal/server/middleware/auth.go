package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/contexts"
	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/objects"
	"github.com/looplj/jsonfixer/internal/server/biz"
)

var unauthorized = objects.ErrorResponse{
	Error:   "Unauthorized",
	Details: "Invalid or missing X-API-KEY header.",
}

// WithAPIKeyAuth rejects requests without a configured API key.
func WithAPIKeyAuth(auth *biz.AuthService, config *APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Disabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		key, err := ExtractAPIKeyFromRequest(c.Request, config)
		if err == nil {
			var name string

			name, err = auth.AuthenticateAPIKey(ctx, key)
			if err == nil {
				c.Request = c.Request.WithContext(contexts.WithAPIKeyName(ctx, name))
				c.Next()

				return
			}
		}

		log.Warn(ctx, "api key validation failed",
			log.String("client_ip", c.ClientIP()),
			log.Cause(err),
		)

		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorized)
	}
}
