package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/objects"
)

// JSONError writes a JSON error response and records err for the access log.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error:   http.StatusText(status),
		Details: err.Error(),
	})
}
