package models

import (
	"time"

	"gorm.io/gorm"
)

// Membership status values. Transitions only move forward: active memberships
// become expired (by the sweeper or a renewal) or cancelled; neither state
// ever returns to active.
const (
	MembershipActive    = "active"
	MembershipExpired   = "expired"
	MembershipCancelled = "cancelled"
)

// Membership kinds.
const (
	KindMonthly    = "monthly"
	KindQuarterly  = "quarterly"
	KindSemiannual = "semiannual"
	KindAnnual     = "annual"
)

// Payment methods.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// Membership represents one paid access period of a client. A client keeps
// a full history of memberships, of which at most one is active.
type Membership struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ClientID      uint            `gorm:"index;not null" json:"client_id"`
	Client        *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	PlanID        *uint           `json:"plan_id"`
	Plan          *MembershipPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Kind          string          `gorm:"size:20;not null" json:"kind"` // monthly, quarterly, semiannual, annual
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       time.Time       `gorm:"not null;index" json:"end_date"`
	Status        string          `gorm:"size:20;not null;default:active;index" json:"status"` // active, expired, cancelled
	PaymentMethod string          `gorm:"size:20" json:"payment_method"`                       // cash, card, transfer, other
	Price         float64         `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Membership) TableName() string { return "memberships" }

// ValidKind reports whether k is a known membership kind.
func ValidKind(k string) bool {
	switch k {
	case KindMonthly, KindQuarterly, KindSemiannual, KindAnnual:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// KindDuration returns the membership period end for a start date and kind.
func KindDuration(kind string, start time.Time) time.Time {
	switch kind {
	case KindQuarterly:
		return start.AddDate(0, 3, 0)
	case KindSemiannual:
		return start.AddDate(0, 6, 0)
	case KindAnnual:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
