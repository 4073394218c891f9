package services

import (
	"errors"
	"fmt"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// PlanService manages the membership plan templates.
type PlanService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{db: db}
}

func (s *PlanService) List(gymID uint, activeOnly bool) ([]models.MembershipPlan, error) {
	query := s.db.Order("duration_days ASC")
	if gymID != 0 {
		query = query.Where("gym_id = ?", gymID)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var plans []models.MembershipPlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *PlanService) GetByID(id uint) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	if err := s.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("membership plan not found")
		}
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) Create(plan *models.MembershipPlan) error {
	if plan.Name == "" {
		return response.NewValidation("plan name is required")
	}
	if !models.ValidKind(plan.Kind) {
		return response.NewValidation(fmt.Sprintf("unknown membership kind %q", plan.Kind))
	}
	if plan.DurationDays <= 0 {
		return response.NewValidation("duration must be positive")
	}
	if plan.Price < 0 {
		return response.NewValidation("price must not be negative")
	}
	return s.db.Create(plan).Error
}

func (s *PlanService) Update(id uint, updates map[string]interface{}) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	if err := s.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("membership plan not found")
		}
		return nil, err
	}

	if err := s.db.Model(&plan).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) Delete(id uint) error {
	result := s.db.Delete(&models.MembershipPlan{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("membership plan not found")
	}
	return nil
}
