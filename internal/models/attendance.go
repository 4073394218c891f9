package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance records one gym entry. AccessCodeID is nil for entries logged
// manually at the desk.
type Attendance struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ClientID     uint           `gorm:"index;not null" json:"client_id"`
	Client       *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AccessCodeID *uint          `gorm:"index" json:"access_code_id"`
	AccessCode   *AccessCode    `gorm:"foreignKey:AccessCodeID" json:"access_code,omitempty"`
	CheckedInAt  time.Time      `gorm:"not null;index" json:"checked_in_at"`
	CheckedOutAt *time.Time     `json:"checked_out_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Attendance) TableName() string { return "attendances" }
