package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type SettingsHandler struct {
	service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// List returns settings, optionally filtered by group.
// GET /api/settings
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.service.List(c.Query("group"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "settings retrieved", settings)
}

// Get returns one setting by key.
// GET /api/settings/:key
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "setting retrieved", setting)
}

// Update sets a setting value. The value is validated against the setting's
// declared type before it is stored.
// PUT /api/settings/:key
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	setting, err := h.service.Set(c.Param("key"), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "setting updated", setting)
}
