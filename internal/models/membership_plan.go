package models

import (
	"time"

	"gorm.io/gorm"
)

// MembershipPlan is a priced template a membership can be opened from. The
// price on a membership may still differ from its plan when a discount was
// applied at the desk.
type MembershipPlan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	GymID        uint           `gorm:"index;not null" json:"gym_id"`
	Gym          *Gym           `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Kind         string         `gorm:"size:20;not null" json:"kind"` // monthly, quarterly, semiannual, annual
	DurationDays int            `gorm:"not null" json:"duration_days"`
	Price        float64        `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Active       bool           `gorm:"default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MembershipPlan) TableName() string { return "membership_plans" }
