package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/middleware"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates an admin and issues a JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "login successful", result)
}

// Me returns the admin behind the current token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	adminID := middleware.GetAdminID(c)
	if adminID == 0 {
		response.Unauthorized(c, "not authenticated")
		return
	}

	admin, err := h.service.GetAdmin(adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "admin retrieved", admin)
}
