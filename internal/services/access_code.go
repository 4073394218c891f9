package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

const (
	// codeBytes yields 16 uppercase hex characters per code.
	codeBytes = 8
	// maxMintAttempts bounds the collision retry loop.
	maxMintAttempts = 10
	// defaultCodeTTL is used when the bound membership has no end date to
	// mirror.
	defaultCodeTTL = 365 * 24 * time.Hour
)

// AccessCodeService owns code generation, the uniqueness guarantee and the
// validation protocol against a membership.
type AccessCodeService struct {
	db  *gorm.DB
	loc *time.Location
	// generate produces candidate codes; swapped out in tests to force
	// collisions.
	generate func() (string, error)
}

func NewAccessCodeService(db *gorm.DB, loc *time.Location) *AccessCodeService {
	if loc == nil {
		loc = time.UTC
	}
	return &AccessCodeService{db: db, loc: loc, generate: generateCode}
}

// generateCode returns a random 16-character uppercase hex token.
func generateCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Mint creates a new access code bound to a membership. expiresAt defaults to
// the membership's end date. Generation retries on collision up to
// maxMintAttempts times; the unique index on code backs the existence check
// against concurrent mints.
func (s *AccessCodeService) Mint(clientID, membershipID uint, expiresAt *time.Time) (*models.AccessCode, error) {
	if clientID == 0 || membershipID == 0 {
		return nil, response.NewValidation("client id and membership id are required")
	}

	var client models.Client
	if err := s.db.First(&client, clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}

	var membership models.Membership
	if err := s.db.First(&membership, membershipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("membership not found")
		}
		return nil, err
	}
	if membership.ClientID != clientID {
		return nil, response.NewValidation("membership does not belong to client")
	}

	expiry := membership.EndDate
	if expiresAt != nil {
		expiry = *expiresAt
	}
	if expiry.IsZero() {
		expiry = time.Now().Add(defaultCodeTTL)
	}

	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return nil, err
		}

		var count int64
		if err := s.db.Model(&models.AccessCode{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}

		accessCode := &models.AccessCode{
			ClientID:     clientID,
			MembershipID: membershipID,
			Code:         code,
			ExpiresAt:    expiry,
			Active:       true,
		}

		// The nested Transaction turns into a savepoint when s.db is already
		// inside one, so a rejected insert does not poison the outer
		// transaction on postgres.
		err = s.db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(accessCode).Error
		})
		if err == nil {
			return accessCode, nil
		}
		// A concurrent mint can win the race between the existence check and
		// the insert; the unique index turns that into a retry.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	return nil, response.NewExhausted("access code generation retry budget exceeded")
}

// Validate checks a code for entry and returns it with its client and
// membership resolved. Validity is derived entirely from the membership: the
// code's own expiry timestamp is not re-checked once the membership gate
// passes, because it mirrors the membership end date at mint time. The end
// date comparison is day-truncated, so the code admits through the whole of
// the membership's final day.
func (s *AccessCodeService) Validate(code string) (*models.AccessCode, error) {
	if code == "" {
		return nil, response.NewValidation("code is required")
	}

	var accessCode models.AccessCode
	err := s.db.Preload("Client").Preload("Membership").
		Where("code = ?", code).First(&accessCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("access code not found")
		}
		return nil, err
	}

	if !accessCode.Active {
		return nil, response.NewInvalidState(response.ReasonInactive, "access code is inactive")
	}

	membership := accessCode.Membership
	if membership == nil || membership.Status != models.MembershipActive {
		return nil, response.NewInvalidState(response.ReasonMembershipInactive, "membership is not active")
	}

	today := dayStart(time.Now(), s.loc)
	endDay := dayStart(membership.EndDate, s.loc)
	if today.After(endDay) {
		return nil, response.NewInvalidState(response.ReasonExpired,
			fmt.Sprintf("membership expired on %s", endDay.Format("2006-01-02")))
	}

	return &accessCode, nil
}

// GetByCode looks a code up without any validity gating.
func (s *AccessCodeService) GetByCode(code string) (*models.AccessCode, error) {
	var accessCode models.AccessCode
	err := s.db.Preload("Client").Preload("Membership").
		Where("code = ?", code).First(&accessCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("access code not found")
		}
		return nil, err
	}
	return &accessCode, nil
}

// DeactivateForMembership deactivates every code bound to a membership.
// Idempotent: already-inactive codes are untouched.
func (s *AccessCodeService) DeactivateForMembership(membershipID uint) (int64, error) {
	result := s.db.Model(&models.AccessCode{}).
		Where("membership_id = ? AND active = ?", membershipID, true).
		Update("active", false)
	return result.RowsAffected, result.Error
}

// DeactivateForMemberships is the set form used by the sweeper.
func (s *AccessCodeService) DeactivateForMemberships(membershipIDs []uint) (int64, error) {
	if len(membershipIDs) == 0 {
		return 0, nil
	}
	result := s.db.Model(&models.AccessCode{}).
		Where("membership_id IN ? AND active = ?", membershipIDs, true).
		Update("active", false)
	return result.RowsAffected, result.Error
}

// DeactivateExpired deactivates codes past their own expiry timestamp,
// independent of membership state.
func (s *AccessCodeService) DeactivateExpired(now time.Time) (int64, error) {
	result := s.db.Model(&models.AccessCode{}).
		Where("active = ? AND expires_at < ?", true, now).
		Update("active", false)
	return result.RowsAffected, result.Error
}

// List returns codes newest first, optionally filtered by client or
// membership.
func (s *AccessCodeService) List(clientID, membershipID uint) ([]models.AccessCode, error) {
	query := s.db.Preload("Client").Preload("Membership").Order("created_at DESC")
	if clientID != 0 {
		query = query.Where("client_id = ?", clientID)
	}
	if membershipID != 0 {
		query = query.Where("membership_id = ?", membershipID)
	}

	var codes []models.AccessCode
	if err := query.Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
