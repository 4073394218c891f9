package services

import (
	"errors"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// TrainerService manages gym staff records.
type TrainerService struct {
	db *gorm.DB
}

func NewTrainerService(db *gorm.DB) *TrainerService {
	return &TrainerService{db: db}
}

func (s *TrainerService) List(gymID uint) ([]models.Trainer, error) {
	query := s.db.Order("last_name ASC, first_name ASC")
	if gymID != 0 {
		query = query.Where("gym_id = ?", gymID)
	}

	var trainers []models.Trainer
	if err := query.Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}

func (s *TrainerService) GetByID(id uint) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := s.db.First(&trainer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("trainer not found")
		}
		return nil, err
	}
	return &trainer, nil
}

func (s *TrainerService) Create(trainer *models.Trainer) error {
	if trainer.FirstName == "" || trainer.LastName == "" {
		return response.NewValidation("first name and last name are required")
	}
	if trainer.GymID == 0 {
		return response.NewValidation("gym id is required")
	}
	return s.db.Create(trainer).Error
}

func (s *TrainerService) Update(id uint, updates map[string]interface{}) (*models.Trainer, error) {
	var trainer models.Trainer
	if err := s.db.First(&trainer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("trainer not found")
		}
		return nil, err
	}

	if err := s.db.Model(&trainer).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &trainer, nil
}

func (s *TrainerService) Delete(id uint) error {
	result := s.db.Delete(&models.Trainer{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("trainer not found")
	}
	return nil
}
