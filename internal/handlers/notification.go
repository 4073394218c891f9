package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/pkg/response"
)

type NotificationHandler struct {
	service *services.NotificationService
	sweeper *services.SweeperService
}

func NewNotificationHandler(service *services.NotificationService, sweeper *services.SweeperService) *NotificationHandler {
	return &NotificationHandler{service: service, sweeper: sweeper}
}

// List returns notifications, optionally filtered by client_id.
// GET /api/notification
func (h *NotificationHandler) List(c *gin.Context) {
	clientID, _ := strconv.ParseUint(c.Query("client_id"), 10, 32)

	notifications, err := h.service.List(uint(clientID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notifications retrieved", notifications)
}

// ListUnread returns unread notifications.
// GET /api/notification/unread
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	notifications, err := h.service.ListUnread()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "unread notifications retrieved", notifications)
}

// MarkRead marks one notification read.
// PUT /api/notification/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	notification, err := h.service.MarkRead(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notification marked read", notification)
}

// MarkAllRead marks every unread notification read.
// PUT /api/notification/mark-all-read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	count, err := h.service.MarkAllRead()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notifications marked read", gin.H{"marked": count})
}

// Delete removes a notification.
// DELETE /api/notification/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "notification deleted", nil)
}

// VerifyExpirations runs one sweeper pass synchronously.
// POST /api/notification/verify-expirations
func (h *NotificationHandler) VerifyExpirations(c *gin.Context) {
	result, err := h.sweeper.Sweep(time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, "expiration sweep completed", result)
}
