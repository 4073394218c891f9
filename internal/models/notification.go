package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification kinds.
const (
	NotifyMembershipUpcomingExpiry = "membership_upcoming_expiry"
	NotifyMembershipExpired        = "membership_expired"
	NotifyCodeUpcomingExpiry       = "code_upcoming_expiry"
	NotifyCodeExpired              = "code_expired"
)

// Notification is an append-only alert record. At most one unread
// membership_upcoming_expiry notification exists per membership; the sweeper
// checks this before inserting.
type Notification struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ClientID      uint           `gorm:"index;not null" json:"client_id"`
	Client        *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	MembershipID  *uint          `gorm:"index" json:"membership_id"`
	Membership    *Membership    `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	Kind          string         `gorm:"size:50;not null;index" json:"kind"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Message       string         `gorm:"type:text;not null" json:"message"`
	Read          bool           `gorm:"default:false;index" json:"read"`
	DueDate       *time.Time     `json:"due_date"`
	DaysRemaining *int           `json:"days_remaining"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
