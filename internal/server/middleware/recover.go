package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/server/biz"
)

// Recovery turns handler panics into a 500 JSON error.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.Any("panic", fmt.Sprint(recovered)),
		)

		AbortWithError(c, http.StatusInternalServerError, biz.ErrInternal)
	})
}
