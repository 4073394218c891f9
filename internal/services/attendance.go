package services

import (
	"errors"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// AttendanceService records gym entries. Check-in goes through the full
// access-code validation, so an expired or orphaned code never produces an
// attendance row.
type AttendanceService struct {
	db    *gorm.DB
	codes *AccessCodeService
}

func NewAttendanceService(db *gorm.DB, codes *AccessCodeService) *AttendanceService {
	return &AttendanceService{db: db, codes: codes}
}

// CheckIn validates the code and records the entry.
func (s *AttendanceService) CheckIn(code string) (*models.Attendance, error) {
	accessCode, err := s.codes.Validate(code)
	if err != nil {
		return nil, err
	}

	codeID := accessCode.ID
	attendance := &models.Attendance{
		ClientID:     accessCode.ClientID,
		AccessCodeID: &codeID,
		CheckedInAt:  time.Now(),
	}
	if err := s.db.Create(attendance).Error; err != nil {
		return nil, err
	}

	attendance.Client = accessCode.Client
	return attendance, nil
}

// CheckOut stamps the departure time on an open attendance row.
func (s *AttendanceService) CheckOut(id uint) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := s.db.First(&attendance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("attendance not found")
		}
		return nil, err
	}
	if attendance.CheckedOutAt != nil {
		return nil, response.NewConflict("attendance already checked out")
	}

	now := time.Now()
	attendance.CheckedOutAt = &now
	if err := s.db.Save(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

// List returns attendance rows newest first, optionally filtered by client
// and date range.
func (s *AttendanceService) List(clientID uint, from, to time.Time) ([]models.Attendance, error) {
	query := s.db.Preload("Client").Order("checked_in_at DESC")
	if clientID != 0 {
		query = query.Where("client_id = ?", clientID)
	}
	if !from.IsZero() {
		query = query.Where("checked_in_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("checked_in_at <= ?", to)
	}

	var attendances []models.Attendance
	if err := query.Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}
