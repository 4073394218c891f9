package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type GymHandler struct {
	service *services.GymService
}

func NewGymHandler(service *services.GymService) *GymHandler {
	return &GymHandler{service: service}
}

// List returns all gyms.
// GET /api/gym
func (h *GymHandler) List(c *gin.Context) {
	gyms, err := h.service.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "gyms retrieved", gyms)
}

// GetByID returns one gym.
// GET /api/gym/:id
func (h *GymHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	gym, err := h.service.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "gym retrieved", gym)
}

// Create registers a new gym. Super admin only.
// POST /api/gym
func (h *GymHandler) Create(c *gin.Context) {
	var gym models.Gym
	if err := c.ShouldBindJSON(&gym); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Create(&gym); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "gym created", gym)
}

// Update applies partial updates to a gym. Super admin only.
// PUT /api/gym/:id
func (h *GymHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	gym, err := h.service.Update(uint(id), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "gym updated", gym)
}

// Delete removes a gym. Super admin only.
// DELETE /api/gym/:id
func (h *GymHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "gym deleted", nil)
}
