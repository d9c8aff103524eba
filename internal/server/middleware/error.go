package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/objects"
)

// AbortWithError aborts the request with a JSON error body and records err for the access log.
func AbortWithError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, objects.ErrorResponse{
		Error:   http.StatusText(status),
		Details: err.Error(),
	})
}
