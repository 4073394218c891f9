package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type ClientHandler struct {
	service *services.ClientService
}

func NewClientHandler(service *services.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Create onboards a client: the record, an initial membership and a minted
// access code in one request.
// POST /api/client
func (h *ClientHandler) Create(c *gin.Context) {
	var req struct {
		GymID         uint       `json:"gym_id" binding:"required"`
		FirstName     string     `json:"first_name" binding:"required"`
		LastName      string     `json:"last_name" binding:"required"`
		Document      string     `json:"document"`
		Email         string     `json:"email"`
		Password      string     `json:"password"`
		Phone         string     `json:"phone"`
		WeightKg      *float64   `json:"weight_kg"`
		PlanID        *uint      `json:"plan_id"`
		Kind          string     `json:"kind"`
		StartDate     *time.Time `json:"start_date"`
		EndDate       *time.Time `json:"end_date"`
		Price         float64    `json:"price"`
		PaymentMethod string     `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := services.OnboardParams{
		GymID:         req.GymID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Document:      req.Document,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		WeightKg:      req.WeightKg,
		PlanID:        req.PlanID,
		Kind:          req.Kind,
		Price:         req.Price,
		PaymentMethod: req.PaymentMethod,
	}
	if req.StartDate != nil {
		params.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		params.EndDate = *req.EndDate
	}

	result, err := h.service.Onboard(params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "client created with membership and access code", result)
}

// List returns clients, optionally filtered by gym_id.
// GET /api/client
func (h *ClientHandler) List(c *gin.Context) {
	gymID, _ := strconv.ParseUint(c.Query("gym_id"), 10, 32)

	clients, err := h.service.List(uint(gymID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "clients retrieved", clients)
}

// GetByID returns one client with membership and code history.
// GET /api/client/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	client, err := h.service.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "client retrieved", client)
}

// Update applies partial updates to a client.
// PUT /api/client/:id
func (h *ClientHandler) Update(c *gin.Context) {
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

	client, err := h.service.Update(uint(id), updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "client updated", client)
}

// Delete soft-deletes a client.
// DELETE /api/client/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "client deleted", nil)
}
