package models

import (
	"time"

	"gorm.io/gorm"
)

// AccessCode is the opaque token behind the QR image that gates entry. Its
// validity is derived from the bound membership: codes are deactivated, never
// deleted, once the membership leaves the active state.
type AccessCode struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ClientID     uint           `gorm:"index;not null" json:"client_id"`
	Client       *Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	MembershipID uint           `gorm:"index;not null" json:"membership_id"`
	Membership   *Membership    `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	Code         string         `gorm:"uniqueIndex;size:32;not null" json:"code"`
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`
	Active       bool           `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AccessCode) TableName() string { return "access_codes" }
