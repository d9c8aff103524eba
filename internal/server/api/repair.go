package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/objects"
	"github.com/looplj/jsonfixer/internal/repair"
	"github.com/looplj/jsonfixer/internal/server/biz"
)

// OutcomeHeader names the response header carrying the outcome kind.
const OutcomeHeader = "JF-Repair-Outcome"

type RepairHandlersParams struct {
	fx.In

	RepairService *biz.RepairService
}

func NewRepairHandlers(params RepairHandlersParams) *RepairHandlers {
	return &RepairHandlers{
		RepairService: params.RepairService,
	}
}

type RepairHandlers struct {
	RepairService *biz.RepairService
}

// FixJSON repairs the raw request body. Valid and repaired JSON is echoed with 200,
// anything that stays invalid gets a 400 with the diagnostic body.
func (h *RepairHandlers) FixJSON(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			JSONError(c, http.StatusRequestEntityTooLarge, fmt.Errorf("request body too large: limit is %d bytes", maxErr.Limit))
			return
		}

		JSONError(c, http.StatusBadRequest, fmt.Errorf("read request body: %w", err))

		return
	}

	outcome := h.RepairService.Repair(ctx, string(body))
	c.Header(OutcomeHeader, string(outcome.Kind))

	if outcome.Kind == repair.KindFailed {
		_ = c.Error(errors.New(outcome.Details))
		c.JSON(http.StatusBadRequest, objects.RepairFailure{
			Error:         objects.RepairFailureMessage,
			OriginalInput: outcome.OriginalInput,
			AttemptedFix:  outcome.AttemptedFix,
			Details:       outcome.Details,
		})

		return
	}

	contentType := c.NegotiateFormat(gin.MIMEPlain, gin.MIMEJSON)
	if contentType == "" {
		contentType = gin.MIMEPlain
	}

	c.Data(http.StatusOK, contentType+"; charset=utf-8", []byte(outcome.Text))
}
