package services

import (
	"errors"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/utils"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// ClientService owns the client roster and the onboarding flow that opens
// the initial membership and mints the first access code.
type ClientService struct {
	db          *gorm.DB
	memberships *MembershipService
	codes       *AccessCodeService
}

func NewClientService(db *gorm.DB, memberships *MembershipService, codes *AccessCodeService) *ClientService {
	return &ClientService{db: db, memberships: memberships, codes: codes}
}

// OnboardParams is the input for creating a client with their first
// membership and access code.
type OnboardParams struct {
	GymID         uint
	FirstName     string
	LastName      string
	Document      string
	Email         string
	Password      string
	Phone         string
	WeightKg      *float64
	PlanID        *uint
	Kind          string
	StartDate     time.Time
	EndDate       time.Time
	Price         float64
	PaymentMethod string
}

// OnboardResult bundles everything created during onboarding.
type OnboardResult struct {
	Client     *models.Client     `json:"client"`
	Membership *models.Membership `json:"membership"`
	AccessCode *models.AccessCode `json:"access_code"`
}

// Onboard creates the client, opens their initial membership and mints an
// access code bound to it. When no end date is given it is derived from the
// membership kind (or the referenced plan's duration).
func (s *ClientService) Onboard(params OnboardParams) (*OnboardResult, error) {
	if params.FirstName == "" || params.LastName == "" {
		return nil, response.NewValidation("first name and last name are required")
	}
	if params.Email != "" && params.Password == "" {
		return nil, response.NewValidation("password is required when email is set")
	}
	if params.GymID == 0 {
		return nil, response.NewValidation("gym id is required")
	}

	var gym models.Gym
	if err := s.db.First(&gym, params.GymID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gym not found")
		}
		return nil, err
	}

	kind := params.Kind
	price := params.Price
	if params.PlanID != nil {
		var plan models.MembershipPlan
		if err := s.db.First(&plan, *params.PlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewNotFound("membership plan not found")
			}
			return nil, err
		}
		if kind == "" {
			kind = plan.Kind
		}
		if price == 0 {
			price = plan.Price
		}
	}
	if kind == "" {
		kind = models.KindMonthly
	}

	start := params.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	end := params.EndDate
	if end.IsZero() {
		end = models.KindDuration(kind, start)
	}

	hashedPassword := ""
	if params.Password != "" {
		var err error
		hashedPassword, err = utils.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}
	}

	client := &models.Client{
		GymID:     params.GymID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Document:  params.Document,
		Email:     params.Email,
		Password:  hashedPassword,
		Phone:     params.Phone,
		WeightKg:  params.WeightKg,
		Active:    true,
	}

	// Client, membership and code land in one transaction: a failed mint
	// must not leave a client without a scannable code.
	var membership *models.Membership
	var accessCode *models.AccessCode
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(client).Error; err != nil {
			return err
		}

		memberships := &MembershipService{db: tx, loc: s.memberships.loc}
		m, err := memberships.CreateOrRenew(CreateOrRenewParams{
			ClientID:      client.ID,
			PlanID:        params.PlanID,
			Kind:          kind,
			StartDate:     start,
			EndDate:       end,
			Price:         price,
			PaymentMethod: params.PaymentMethod,
		})
		if err != nil {
			return err
		}
		membership = m

		codes := &AccessCodeService{db: tx, loc: s.codes.loc, generate: s.codes.generate}
		code, err := codes.Mint(client.ID, membership.ID, nil)
		if err != nil {
			return err
		}
		accessCode = code
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &OnboardResult{
		Client:     client,
		Membership: membership,
		AccessCode: accessCode,
	}, nil
}

// List returns clients newest first, optionally filtered by gym.
func (s *ClientService) List(gymID uint) ([]models.Client, error) {
	query := s.db.Preload("Memberships").Preload("AccessCodes").Order("created_at DESC")
	if gymID != 0 {
		query = query.Where("gym_id = ?", gymID)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// GetByID returns a client with membership and code history.
func (s *ClientService) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := s.db.Preload("Memberships", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Preload("AccessCodes").First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}
	return &client, nil
}

// Update applies partial updates to a client. Password values are hashed
// before storage.
func (s *ClientService) Update(id uint, updates map[string]interface{}) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("client not found")
		}
		return nil, err
	}

	if raw, ok := updates["password"]; ok {
		password, _ := raw.(string)
		if password == "" {
			delete(updates, "password")
		} else {
			hashed, err := utils.HashPassword(password)
			if err != nil {
				return nil, err
			}
			updates["password"] = hashed
		}
	}

	if err := s.db.Model(&client).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Delete soft-deletes a client.
func (s *ClientService) Delete(id uint) error {
	result := s.db.Delete(&models.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("client not found")
	}
	return nil
}
