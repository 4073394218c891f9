package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type MembershipHandler struct {
	service *services.MembershipService
}

func NewMembershipHandler(service *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{service: service}
}

// membershipRequest is the body for creating or renewing a membership.
type membershipRequest struct {
	ClientID      uint       `json:"client_id" binding:"required"`
	PlanID        *uint      `json:"plan_id"`
	Kind          string     `json:"kind"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Price         float64    `json:"price"`
	PaymentMethod string     `json:"payment_method"`
}

func (r *membershipRequest) toParams() services.CreateOrRenewParams {
	params := services.CreateOrRenewParams{
		ClientID:      r.ClientID,
		PlanID:        r.PlanID,
		Kind:          r.Kind,
		Price:         r.Price,
		PaymentMethod: r.PaymentMethod,
	}
	if r.StartDate != nil {
		params.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		params.EndDate = *r.EndDate
	}
	return params
}

// Create opens a membership, demoting any prior active one.
// POST /api/membership
func (h *MembershipHandler) Create(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	membership, err := h.service.CreateOrRenew(req.toParams())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "membership created", membership)
}

// Renew is an alias of Create kept as a separate route for clients that
// distinguish the two intents.
// POST /api/membership/renew
func (h *MembershipHandler) Renew(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	membership, err := h.service.CreateOrRenew(req.toParams())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "membership renewed", membership)
}

// List returns memberships newest first, optionally filtered by client_id.
// GET /api/membership
func (h *MembershipHandler) List(c *gin.Context) {
	clientID, _ := strconv.ParseUint(c.Query("client_id"), 10, 32)

	memberships, err := h.service.List(uint(clientID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "memberships retrieved", memberships)
}

// GetByID returns one membership.
// GET /api/membership/:id
func (h *MembershipHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	membership, err := h.service.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "membership retrieved", membership)
}

// ListActive returns the client's current active membership(s).
// GET /api/membership/client/:clientId/active
func (h *MembershipHandler) ListActive(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	memberships, err := h.service.ListActive(uint(clientID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "active memberships retrieved", memberships)
}

// Cancel transitions an active membership to cancelled.
// PUT /api/membership/:id/cancel
func (h *MembershipHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	membership, err := h.service.Cancel(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "membership cancelled", membership)
}
