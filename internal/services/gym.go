package services

import (
	"errors"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// GymService manages tenant records.
type GymService struct {
	db *gorm.DB
}

func NewGymService(db *gorm.DB) *GymService {
	return &GymService{db: db}
}

func (s *GymService) List() ([]models.Gym, error) {
	var gyms []models.Gym
	if err := s.db.Order("name ASC").Find(&gyms).Error; err != nil {
		return nil, err
	}
	return gyms, nil
}

func (s *GymService) GetByID(id uint) (*models.Gym, error) {
	var gym models.Gym
	if err := s.db.First(&gym, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gym not found")
		}
		return nil, err
	}
	return &gym, nil
}

func (s *GymService) Create(gym *models.Gym) error {
	if gym.Name == "" || gym.Code == "" {
		return response.NewValidation("gym name and code are required")
	}

	err := s.db.Create(gym).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewConflict("gym code already in use")
	}
	return err
}

func (s *GymService) Update(id uint, updates map[string]interface{}) (*models.Gym, error) {
	var gym models.Gym
	if err := s.db.First(&gym, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gym not found")
		}
		return nil, err
	}

	if err := s.db.Model(&gym).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &gym, nil
}

func (s *GymService) Delete(id uint) error {
	result := s.db.Delete(&models.Gym{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("gym not found")
	}
	return nil
}
