package models

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a person who trains at a gym.
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	GymID     uint           `gorm:"index;not null" json:"gym_id"`
	Gym       *Gym           `gorm:"foreignKey:GymID" json:"gym,omitempty"`
	FirstName string         `gorm:"size:100;not null" json:"first_name"`
	LastName  string         `gorm:"size:100;not null" json:"last_name"`
	Document  string         `gorm:"size:50;uniqueIndex" json:"document"` // national ID number
	Email     string         `gorm:"size:255" json:"email"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, empty if no portal access
	Phone     string         `gorm:"size:50" json:"phone"`
	WeightKg  *float64       `gorm:"type:decimal(5,2)" json:"weight_kg"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Memberships []Membership `gorm:"foreignKey:ClientID" json:"memberships,omitempty"`
	AccessCodes []AccessCode `gorm:"foreignKey:ClientID" json:"access_codes,omitempty"`
}

func (Client) TableName() string { return "clients" }

// FullName returns the client's display name.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
