package models

import (
	"time"

	"gorm.io/gorm"
)

// Gym is a tenant organization. Clients, trainers, plans and admins are
// scoped to one gym; a super_admin role crosses tenants.
type Gym struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Code      string         `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"size:50" json:"phone"`
	Email     string         `gorm:"size:255" json:"email"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Gym) TableName() string { return "gyms" }
