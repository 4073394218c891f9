package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type AccessCodeHandler struct {
	service *services.AccessCodeService
}

func NewAccessCodeHandler(service *services.AccessCodeService) *AccessCodeHandler {
	return &AccessCodeHandler{service: service}
}

// Validate checks a scanned code and returns the client and membership it
// admits. Called by turnstile scanners on every entry attempt.
// POST /api/access-code/validate
func (h *AccessCodeHandler) Validate(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "code is required")
		return
	}

	accessCode, err := h.service.Validate(req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "access code valid", gin.H{
		"code":       accessCode,
		"client":     accessCode.Client,
		"membership": accessCode.Membership,
	})
}

// Mint creates a code bound to a membership.
// POST /api/access-code
func (h *AccessCodeHandler) Mint(c *gin.Context) {
	var req struct {
		ClientID     uint       `json:"client_id" binding:"required"`
		MembershipID uint       `json:"membership_id" binding:"required"`
		ExpiresAt    *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	accessCode, err := h.service.Mint(req.ClientID, req.MembershipID, req.ExpiresAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "access code created", accessCode)
}

// GetByCode looks a code up without validity gating.
// GET /api/access-code/code/:code
func (h *AccessCodeHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "code is required")
		return
	}

	accessCode, err := h.service.GetByCode(code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "access code retrieved", accessCode)
}

// List returns codes, optionally filtered by client_id or membership_id.
// GET /api/access-code
func (h *AccessCodeHandler) List(c *gin.Context) {
	clientID, _ := strconv.ParseUint(c.Query("client_id"), 10, 32)
	membershipID, _ := strconv.ParseUint(c.Query("membership_id"), 10, 32)

	codes, err := h.service.List(uint(clientID), uint(membershipID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "access codes retrieved", codes)
}

// Deactivate disables every code bound to a membership.
// PUT /api/access-code/membership/:membershipId/deactivate
func (h *AccessCodeHandler) Deactivate(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("membershipId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid membership id")
		return
	}

	count, err := h.service.DeactivateForMembership(uint(membershipID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "access codes deactivated", gin.H{"deactivated": count})
}
