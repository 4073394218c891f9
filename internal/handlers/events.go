package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/internal/utils"
	"github.com/gymgate/backend/pkg/logger"
	"github.com/gymgate/backend/pkg/response"
)

// EventsHandler streams notification broadcasts over Server-Sent Events.
type EventsHandler struct {
	hub *services.NotificationHub
}

func NewEventsHandler(hub *services.NotificationHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// StreamNotifications handles SSE connections for notification events. The
// token travels as a query parameter because EventSource cannot set headers.
// GET /api/events/notifications
func (h *EventsHandler) StreamNotifications(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if token == "" {
		response.Unauthorized(c, "token required")
		return
	}

	if _, err := utils.ParseToken(token); err != nil {
		response.Unauthorized(c, "invalid token")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()

	events := h.hub.Subscribe(subscriberID)
	defer h.hub.Unsubscribe(subscriberID)

	logger.Info().Str("subscriber_id", subscriberID).Int("total", h.hub.SubscriberCount()).Msg("SSE subscriber connected")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error().Err(err).Msg("SSE marshal error")
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", services.EventNewNotification, data)
			c.Writer.Flush()
			return true
		case <-c.Request.Context().Done():
			logger.Info().Str("subscriber_id", subscriberID).Msg("SSE subscriber disconnected")
			return false
		}
	})
}
