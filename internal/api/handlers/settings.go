package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"scenario-builder/internal/api/models"
	"scenario-builder/internal/registry"
	"scenario-builder/internal/scenario"
)

// SettingsHandler serves the settings structure and per-category reloads.
type SettingsHandler struct {
	session *scenario.Session
}

// NewSettingsHandler creates a settings handler for one page session.
func NewSettingsHandler(session *scenario.Session) *SettingsHandler {
	return &SettingsHandler{session: session}
}

// GetSettings handles GET /api/v1/settings. Every category slot is
// reported, in canonical order, with its load status; a still-loading or
// failed category is visible as such rather than silently absent.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	slots := h.session.Structure.Slots()
	c.JSON(http.StatusOK, models.SettingsResponse{
		Categories: slots,
		Count:      len(slots),
	})
}

// ReloadCategory handles POST /api/v1/settings/:key/reload — the manual
// recovery path for a failed category fetch.
func (h *SettingsHandler) ReloadCategory(c *gin.Context) {
	key := c.Param("key")
	if _, ok := registry.CategoryByKey(key); !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_CATEGORY",
				Message: fmt.Sprintf("no setting category %q", key),
			},
		})
		return
	}

	if err := h.session.Loader.LoadCategory(c.Request.Context(), key); err != nil {
		// The failure is already recorded on the slot; report it to the
		// caller as well.
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "OPTION_LOAD_ERROR",
				Message: fmt.Sprintf("failed to reload %q: %v", key, err),
			},
		})
		return
	}

	slot, _ := h.session.Structure.Slot(key)
	c.JSON(http.StatusOK, slot)
}

// GetFeatures handles GET /api/v1/features.
func (h *SettingsHandler) GetFeatures(c *gin.Context) {
	features := registry.Features()
	c.JSON(http.StatusOK, models.FeaturesResponse{
		Features: features,
		Count:    len(features),
	})
}
