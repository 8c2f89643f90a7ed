package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scenario-builder/internal/api/models"
	"scenario-builder/internal/scenario"
)

// ViewHandler forwards row-detail view requests to the view-data sink.
type ViewHandler struct {
	session *scenario.Session
}

// NewViewHandler creates a view handler for one page session.
func NewViewHandler(session *scenario.Session) *ViewHandler {
	return &ViewHandler{session: session}
}

// ShowRow handles POST /api/v1/view. Fire-and-forget: the sink owns what
// happens with the "{table}-{row}" key.
func (h *ViewHandler) ShowRow(c *gin.Context) {
	var req models.ViewRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	h.session.ShowRow(req.Table, req.Row)
	c.Status(http.StatusAccepted)
}
