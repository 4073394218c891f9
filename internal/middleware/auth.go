package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/utils"
	"github.com/gymgate/backend/pkg/response"
)

const (
	ContextAdminID = "admin_id"
	ContextEmail   = "email"
	ContextRole    = "role"
)

// AuthRequired checks for a valid admin JWT.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, response.Response{Success: false, Message: "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, response.Response{Success: false, Message: "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, response.Response{Success: false, Message: "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// SuperAdminRequired restricts a route to the cross-tenant role.
func SuperAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, response.Response{Success: false, Message: "super admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAdminID gets the authenticated admin's id from context.
func GetAdminID(c *gin.Context) uint {
	if id, exists := c.Get(ContextAdminID); exists {
		return id.(uint)
	}
	return 0
}
