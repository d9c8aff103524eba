package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/build"
	"github.com/looplj/jsonfixer/internal/objects"
	"github.com/looplj/jsonfixer/internal/server/biz"
)

type SystemHandlersParams struct {
	fx.In

	RepairService *biz.RepairService
}

func NewSystemHandlers(params SystemHandlersParams) *SystemHandlers {
	return &SystemHandlers{
		RepairService: params.RepairService,
	}
}

type SystemHandlers struct {
	RepairService *biz.RepairService
}

func (h *SystemHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, objects.HealthResponse{
		Status:  "ok",
		Version: build.Version,
	})
}

func (h *SystemHandlers) Version(c *gin.Context) {
	c.JSON(http.StatusOK, build.GetBuildInfo())
}

// Stats reports outcome counters since the process started.
func (h *SystemHandlers) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.RepairService.Stats())
}
