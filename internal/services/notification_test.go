package services

import (
	"errors"
	"testing"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
)

func seedNotification(t *testing.T, svc *NotificationService, clientID uint, membershipID *uint) *models.Notification {
	t.Helper()

	notification, err := svc.Record(&models.Notification{
		ClientID:     clientID,
		MembershipID: membershipID,
		Kind:         models.NotifyMembershipUpcomingExpiry,
		Title:        "Membership expiring soon",
		Message:      "The monthly membership expires in 3 day(s)",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	return notification
}

func TestNotificationRecord_Preloads(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))

	notification := seedNotification(t, svc, client.ID, &membership.ID)

	if notification.Client == nil || notification.Client.ID != client.ID {
		t.Error("Record should return the notification with its client resolved")
	}
	if notification.Membership == nil || notification.Membership.ID != membership.ID {
		t.Error("Record should return the notification with its membership resolved")
	}
	if notification.Read {
		t.Error("New notification should be unread")
	}
}

func TestNotificationHasUnread(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))

	exists, err := svc.HasUnread(membership.ID, models.NotifyMembershipUpcomingExpiry)
	if err != nil {
		t.Fatalf("HasUnread failed: %v", err)
	}
	if exists {
		t.Error("HasUnread should be false before any notification")
	}

	notification := seedNotification(t, svc, client.ID, &membership.ID)

	exists, err = svc.HasUnread(membership.ID, models.NotifyMembershipUpcomingExpiry)
	if err != nil {
		t.Fatalf("HasUnread failed: %v", err)
	}
	if !exists {
		t.Error("HasUnread should be true while a notification is unread")
	}

	// A different kind does not trip the gate.
	exists, err = svc.HasUnread(membership.ID, models.NotifyMembershipExpired)
	if err != nil {
		t.Fatalf("HasUnread failed: %v", err)
	}
	if exists {
		t.Error("HasUnread should be kind-scoped")
	}

	if _, err := svc.MarkRead(notification.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	exists, err = svc.HasUnread(membership.ID, models.NotifyMembershipUpcomingExpiry)
	if err != nil {
		t.Fatalf("HasUnread failed: %v", err)
	}
	if exists {
		t.Error("HasUnread should be false once the notification is read")
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil)
	client := seedClient(t, db)

	seedNotification(t, svc, client.ID, nil)
	seedNotification(t, svc, client.ID, nil)

	unread, err := svc.ListUnread()
	if err != nil {
		t.Fatalf("ListUnread failed: %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("ListUnread returned %d, expected 2", len(unread))
	}

	affected, err := svc.MarkAllRead()
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if affected != 2 {
		t.Errorf("MarkAllRead affected %d rows, expected 2", affected)
	}

	unread, err = svc.ListUnread()
	if err != nil {
		t.Fatalf("ListUnread failed: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("ListUnread returned %d after MarkAllRead, expected 0", len(unread))
	}
}

func TestNotificationDelete(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil)
	client := seedClient(t, db)

	notification := seedNotification(t, svc, client.ID, nil)

	if err := svc.Delete(notification.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	err := svc.Delete(notification.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Reason != response.ReasonNotFound {
		t.Errorf("Deleting twice should return not_found, got %v", err)
	}
}

func TestNotificationMarkRead_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(db, nil)

	_, err := svc.MarkRead(12345)
	var appErr *response.AppError
	if !errors.As(err, &appErr) || appErr.Reason != response.ReasonNotFound {
		t.Errorf("MarkRead of unknown id should return not_found, got %v", err)
	}
}
