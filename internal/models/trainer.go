package models

import (
	"time"

	"gorm.io/gorm"
)

// Trainer represents gym staff who run sessions.
type Trainer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GymID     uint           `gorm:"index;not null" json:"gym_id"`
	Gym       *Gym           `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	FirstName string         `gorm:"size:100;not null" json:"first_name"`
	LastName  string         `gorm:"size:100;not null" json:"last_name"`
	Email     string         `gorm:"size:255" json:"email"`
	Phone     string         `gorm:"size:50" json:"phone"`
	Specialty string         `gorm:"size:100" json:"specialty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Trainer) TableName() string { return "trainers" }
