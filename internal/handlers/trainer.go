package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type TrainerHandler struct {
	service *services.TrainerService
}

func NewTrainerHandler(service *services.TrainerService) *TrainerHandler {
	return &TrainerHandler{service: service}
}

// List returns trainers, optionally filtered by gym.
// GET /api/trainer
func (h *TrainerHandler) List(c *gin.Context) {
	gymID, _ := strconv.ParseUint(c.Query("gym_id"), 10, 32)

	trainers, err := h.service.List(uint(gymID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "trainers retrieved", trainers)
}

// GetByID returns one trainer.
// GET /api/trainer/:id
func (h *TrainerHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	trainer, err := h.service.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "trainer retrieved", trainer)
}

// Create registers a trainer.
// POST /api/trainer
func (h *TrainerHandler) Create(c *gin.Context) {
	var trainer models.Trainer
	if err := c.ShouldBindJSON(&trainer); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Create(&trainer); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "trainer created", trainer)
}

// Update applies partial updates to a trainer.
// PUT /api/trainer/:id
func (h *TrainerHandler) Update(c *gin.Context) {
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

	trainer, err := h.service.Update(uint(id), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "trainer updated", trainer)
}

// Delete removes a trainer.
// DELETE /api/trainer/:id
func (h *TrainerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "trainer deleted", nil)
}
