package services

import (
	"testing"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
)

func TestCheckIn(t *testing.T) {
	db := openTestDB(t)
	codes := NewAccessCodeService(db, time.UTC)
	svc := NewAttendanceService(db, codes)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))
	code, err := codes.Mint(client.ID, membership.ID, nil)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	attendance, err := svc.CheckIn(code.Code)
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if attendance.ClientID != client.ID {
		t.Errorf("ClientID = %d, expected %d", attendance.ClientID, client.ID)
	}
	if attendance.AccessCodeID == nil || *attendance.AccessCodeID != code.ID {
		t.Error("Attendance should reference the validated code")
	}
	if attendance.CheckedInAt.IsZero() {
		t.Error("CheckedInAt should be stamped")
	}
}

func TestCheckIn_RejectsInvalidCode(t *testing.T) {
	db := openTestDB(t)
	codes := NewAccessCodeService(db, time.UTC)
	svc := NewAttendanceService(db, codes)
	client := seedClient(t, db)

	now := time.Now().UTC()

	// Code bound to an expired membership must not produce an attendance row.
	membership := seedMembership(t, db, client.ID, models.MembershipExpired,
		now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
	code := &models.AccessCode{
		ClientID:     client.ID,
		MembershipID: membership.ID,
		Code:         "DDDD111122223333",
		ExpiresAt:    membership.EndDate,
		Active:       true,
	}
	if err := db.Create(code).Error; err != nil {
		t.Fatalf("Failed to seed code: %v", err)
	}

	_, err := svc.CheckIn(code.Code)
	assertReason(t, err, response.ReasonMembershipInactive)

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	if count != 0 {
		t.Errorf("Attendance count = %d, expected 0 after rejected check-in", count)
	}
}

func TestCheckOut(t *testing.T) {
	db := openTestDB(t)
	codes := NewAccessCodeService(db, time.UTC)
	svc := NewAttendanceService(db, codes)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))
	code, err := codes.Mint(client.ID, membership.ID, nil)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	attendance, err := svc.CheckIn(code.Code)
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}

	checked, err := svc.CheckOut(attendance.ID)
	if err != nil {
		t.Fatalf("CheckOut failed: %v", err)
	}
	if checked.CheckedOutAt == nil {
		t.Fatal("CheckedOutAt should be stamped")
	}

	// A second check-out conflicts.
	_, err = svc.CheckOut(attendance.ID)
	assertReason(t, err, response.ReasonConflict)

	_, err = svc.CheckOut(99999)
	assertReason(t, err, response.ReasonNotFound)
}
