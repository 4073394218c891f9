package services

import (
	"errors"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// NotificationService owns the append-only notification log and its
// real-time publish hook.
type NotificationService struct {
	db  *gorm.DB
	hub *NotificationHub
}

func NewNotificationService(db *gorm.DB, hub *NotificationHub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// Record inserts a notification and reloads it with its client and
// membership resolved for downstream publishing.
func (s *NotificationService) Record(notification *models.Notification) (*models.Notification, error) {
	if err := s.db.Create(notification).Error; err != nil {
		return nil, err
	}

	var full models.Notification
	if err := s.db.Preload("Client").Preload("Membership").First(&full, notification.ID).Error; err != nil {
		return nil, err
	}
	return &full, nil
}

// Publish fans the notification out to all connected subscribers.
// Best-effort, at-most-once; subscribers that connect later must poll
// ListUnread.
func (s *NotificationService) Publish(notification *models.Notification) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(NotificationEvent{Success: true, Data: notification})
}

// HasUnread reports whether an unread notification of the given kind exists
// for a membership. The sweeper's dedup gate.
func (s *NotificationService) HasUnread(membershipID uint, kind string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("membership_id = ? AND kind = ? AND read = ?", membershipID, kind, false).
		Count(&count).Error
	return count > 0, err
}

// List returns notifications newest first, optionally filtered by client.
func (s *NotificationService) List(clientID uint) ([]models.Notification, error) {
	query := s.db.Preload("Client").Preload("Membership").Order("created_at DESC")
	if clientID != 0 {
		query = query.Where("client_id = ?", clientID)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListUnread returns unread notifications newest first.
func (s *NotificationService) ListUnread() ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Preload("Client").Preload("Membership").
		Where("read = ?", false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks one notification read.
func (s *NotificationService) MarkRead(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("notification not found")
		}
		return nil, err
	}

	notification.Read = true
	if err := s.db.Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAllRead marks every unread notification read and returns the count.
func (s *NotificationService) MarkAllRead() (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("read = ?", false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

// Delete removes a notification from the log.
func (s *NotificationService) Delete(id uint) error {
	result := s.db.Delete(&models.Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("notification not found")
	}
	return nil
}
