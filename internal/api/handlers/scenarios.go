package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scenario-builder/internal/api/models"
	"scenario-builder/internal/scenario"
	"scenario-builder/internal/submit"
)

// ScenarioHandler triggers scenario creation.
type ScenarioHandler struct {
	session *scenario.Session
}

// NewScenarioHandler creates a scenario handler for one page session.
func NewScenarioHandler(session *scenario.Session) *ScenarioHandler {
	return &ScenarioHandler{session: session}
}

// CreateScenario handles POST /api/v1/scenarios: package the current form
// into one creation request and return the minted identifier. A submission
// already in flight is rejected; transport failures leave the form intact
// so the caller can retry.
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	id, err := h.session.Submit(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		code := "SUBMISSION_ERROR"

		var timeoutErr *submit.SubmissionTimeoutError
		switch {
		case errors.Is(err, submit.ErrSubmissionInFlight):
			status = http.StatusConflict
			code = "SUBMISSION_IN_FLIGHT"
		case errors.As(err, &timeoutErr):
			status = http.StatusGatewayTimeout
			code = "SUBMISSION_TIMEOUT"
		}

		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SubmitResponse{ScenarioID: id})
}
