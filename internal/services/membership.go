package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// MembershipService owns the membership lifecycle: creation/renewal with the
// single-active invariant, bulk expiry and cancellation.
type MembershipService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewMembershipService(db *gorm.DB, loc *time.Location) *MembershipService {
	if loc == nil {
		loc = time.UTC
	}
	return &MembershipService{db: db, loc: loc}
}

// CreateOrRenewParams carries the input for opening or renewing a membership.
type CreateOrRenewParams struct {
	ClientID      uint
	PlanID        *uint
	Kind          string
	StartDate     time.Time
	EndDate       time.Time
	Price         float64
	PaymentMethod string
}

// CreateOrRenew atomically demotes any currently active membership of the
// client to expired, then inserts the new one as active. A second active
// membership can never exist: the demote and the insert share one
// transaction.
func (s *MembershipService) CreateOrRenew(params CreateOrRenewParams) (*models.Membership, error) {
	if params.ClientID == 0 {
		return nil, response.NewValidation("client id is required")
	}
	if params.EndDate.IsZero() {
		return nil, response.NewValidation("end date is required")
	}
	if params.Price < 0 {
		return nil, response.NewValidation("price must not be negative")
	}

	if params.Kind == "" {
		params.Kind = models.KindMonthly
	}
	if !models.ValidKind(params.Kind) {
		return nil, response.NewValidation(fmt.Sprintf("unknown membership kind %q", params.Kind))
	}
	if params.PaymentMethod != "" && !models.ValidPaymentMethod(params.PaymentMethod) {
		return nil, response.NewValidation(fmt.Sprintf("unknown payment method %q", params.PaymentMethod))
	}
	if params.StartDate.IsZero() {
		params.StartDate = time.Now().In(s.loc)
	}
	if params.StartDate.After(params.EndDate) {
		return nil, response.NewValidation("start date must not be after end date")
	}

	var client models.Client
	if err := s.db.First(&client, params.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewValidation("client not found")
		}
		return nil, err
	}

	if params.PlanID != nil {
		var plan models.MembershipPlan
		if err := s.db.First(&plan, *params.PlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFound("membership plan not found")
			}
			return nil, err
		}
	}

	membership := &models.Membership{
		ClientID:      params.ClientID,
		PlanID:        params.PlanID,
		Kind:          params.Kind,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		Status:        models.MembershipActive,
		PaymentMethod: params.PaymentMethod,
		Price:         params.Price,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Membership{}).
			Where("client_id = ? AND status = ?", params.ClientID, models.MembershipActive).
			Update("status", models.MembershipExpired).Error; err != nil {
			return err
		}
		return tx.Create(membership).Error
	})
	if err != nil {
		// The partial unique index on active memberships rejects a racing
		// renewal that committed between our demote and insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("client already has an active membership")
		}
		return nil, err
	}

	return membership, nil
}

// ListActive returns the client's current active membership(s). Besides the
// status flag it also requires end_date >= today, so a record the sweeper has
// not flipped yet is still filtered out.
func (s *MembershipService) ListActive(clientID uint) ([]models.Membership, error) {
	today := dayStart(time.Now(), s.loc)

	var memberships []models.Membership
	err := s.db.Where("client_id = ? AND status = ? AND end_date >= ?",
		clientID, models.MembershipActive, today).
		Order("created_at DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// ExpireOverdue flips every active membership whose end date lies before the
// current day to expired and returns the number of rows changed. The update
// is a single conditional set, so re-running it with the same now is a no-op.
func (s *MembershipService) ExpireOverdue(now time.Time) (int64, error) {
	result := s.db.Model(&models.Membership{}).
		Where("status = ? AND end_date < ?", models.MembershipActive, dayStart(now, s.loc)).
		Update("status", models.MembershipExpired)
	return result.RowsAffected, result.Error
}

// Cancel transitions an active membership to cancelled.
func (s *MembershipService) Cancel(id uint) (*models.Membership, error) {
	var membership models.Membership
	if err := s.db.First(&membership, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("membership not found")
		}
		return nil, err
	}

	if membership.Status != models.MembershipActive {
		return nil, response.NewConflict(fmt.Sprintf("membership is %s, only active memberships can be cancelled", membership.Status))
	}

	membership.Status = models.MembershipCancelled
	if err := s.db.Save(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByID returns a membership with its client and plan resolved.
func (s *MembershipService) GetByID(id uint) (*models.Membership, error) {
	var membership models.Membership
	err := s.db.Preload("Client").Preload("Plan").First(&membership, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("membership not found")
		}
		return nil, err
	}
	return &membership, nil
}

// List returns memberships newest first, optionally filtered by client.
func (s *MembershipService) List(clientID uint) ([]models.Membership, error) {
	query := s.db.Preload("Client").Order("created_at DESC")
	if clientID != 0 {
		query = query.Where("client_id = ?", clientID)
	}

	var memberships []models.Membership
	if err := query.Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// InactiveIDs returns the ids of all memberships no longer active. The
// sweeper uses it to catch codes orphaned in this pass or any earlier one.
func (s *MembershipService) InactiveIDs() ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Membership{}).
		Where("status IN ?", []string{models.MembershipExpired, models.MembershipCancelled}).
		Pluck("id", &ids).Error
	return ids, err
}

// ExpiringWithin returns active memberships whose end date falls inside
// [now, now+window], with clients preloaded for notification titles.
func (s *MembershipService) ExpiringWithin(now time.Time, window time.Duration) ([]models.Membership, error) {
	var memberships []models.Membership
	err := s.db.Preload("Client").
		Where("status = ? AND end_date BETWEEN ? AND ?", models.MembershipActive, now, now.Add(window)).
		Find(&memberships).Error
	return memberships, err
}
