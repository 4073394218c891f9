package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type PlanHandler struct {
	service *services.PlanService
}

func NewPlanHandler(service *services.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// List returns membership plans, optionally filtered by gym and active flag.
// GET /api/plan
func (h *PlanHandler) List(c *gin.Context) {
	gymID, _ := strconv.ParseUint(c.Query("gym_id"), 10, 32)
	activeOnly := c.Query("active") == "true"

	plans, err := h.service.List(uint(gymID), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "plans retrieved", plans)
}

// GetByID returns one plan.
// GET /api/plan/:id
func (h *PlanHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	plan, err := h.service.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "plan retrieved", plan)
}

// Create adds a membership plan.
// POST /api/plan
func (h *PlanHandler) Create(c *gin.Context) {
	var plan models.MembershipPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Create(&plan); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "plan created", plan)
}

// Update applies partial updates to a plan.
// PUT /api/plan/:id
func (h *PlanHandler) Update(c *gin.Context) {
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

	plan, err := h.service.Update(uint(id), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "plan updated", plan)
}

// Delete removes a plan.
// DELETE /api/plan/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "plan deleted", nil)
}
