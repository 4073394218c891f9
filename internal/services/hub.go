package services

import (
	"sync"

	"github.com/gymgate/backend/internal/models"
)

// NotificationEvent is the payload pushed to real-time subscribers whenever
// the sweeper records a notification.
type NotificationEvent struct {
	Success bool                 `json:"success"`
	Data    *models.Notification `json:"data"`
}

// EventNewNotification is the SSE event name for notification broadcasts.
const EventNewNotification = "new_notification"

// NotificationHub fans notification events out to all currently connected
// subscribers. Delivery is best-effort and at-most-once: a subscriber that
// connects after Publish never receives the event, and a slow subscriber
// whose buffer is full drops it.
type NotificationHub struct {
	subscribers map[string]chan NotificationEvent
	mu          sync.RWMutex
}

// NewNotificationHub creates an empty hub. The hub is built in bootstrap and
// injected into the sweeper and the SSE handler; there is no package-level
// instance.
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		subscribers: make(map[string]chan NotificationEvent),
	}
}

// Subscribe registers a subscriber and returns its event channel.
func (h *NotificationHub) Subscribe(subscriberID string) <-chan NotificationEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan NotificationEvent, 100)
	h.subscribers[subscriberID] = ch
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *NotificationHub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[subscriberID]; ok {
		close(ch)
		delete(h.subscribers, subscriberID)
	}
}

// Publish broadcasts an event to every connected subscriber without blocking.
func (h *NotificationHub) Publish(event NotificationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full, event dropped
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *NotificationHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
