package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin represents a back-office user. GymID is nil for super administrators.
type Admin struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GymID     *uint          `gorm:"index" json:"gym_id"`
	Gym       *Gym           `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Role      string         `gorm:"size:50;default:admin" json:"role"`
	Active    bool           `gorm:"default:true" json:"active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string { return "admins" }
