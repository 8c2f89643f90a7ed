package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scenario-builder/internal/api/models"
	"scenario-builder/internal/model"
	"scenario-builder/internal/scenario"
)

// FormHandler exposes the composite form state and its mutation entry
// points: single field writes from user input and starting-values intake
// from the external edit-scenario feature.
type FormHandler struct {
	session *scenario.Session
}

// NewFormHandler creates a form handler for one page session.
func NewFormHandler(session *scenario.Session) *FormHandler {
	return &FormHandler{session: session}
}

// GetForm handles GET /api/v1/form. If the most recent hydration attempt
// failed, that error is surfaced here instead of silently serving a
// partially stale form.
func (h *FormHandler) GetForm(c *gin.Context) {
	if err := h.session.HydrationError(); err != nil {
		var mismatch *scenario.HydrationMismatchError
		code := "HYDRATION_ERROR"
		if errors.As(err, &mismatch) {
			code = "HYDRATION_MISMATCH"
		}
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.FormResponse{Fields: h.session.Form.Snapshot()})
}

// SetField handles PUT /api/v1/form/fields.
func (h *FormHandler) SetField(c *gin.Context) {
	var req models.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	if err := h.session.Form.SetField(req.Key, req.Value); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_FIELD",
				Message: err.Error(),
			},
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// ReceiveStartingValues handles POST /api/v1/starting-values: the intake
// side of the single-slot starting-values channel. The snapshot is
// published to the watcher; the hydrator applies the latest one.
func (h *FormHandler) ReceiveStartingValues(c *gin.Context) {
	var req models.StartingValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	h.session.Watcher.Publish(model.StartingValues(req))
	c.Status(http.StatusAccepted)
}
