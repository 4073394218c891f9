package services

import (
	"errors"
	"strconv"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// SettingsService reads and writes typed application settings.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) List(group string) ([]models.AppSetting, error) {
	query := s.db.Order("`group` ASC, `key` ASC")
	if group != "" {
		query = query.Where("`group` = ?", group)
	}

	var settings []models.AppSetting
	if err := query.Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) Get(key string) (*models.AppSetting, error) {
	var setting models.AppSetting
	if err := s.db.Where("`key` = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("setting not found")
		}
		return nil, err
	}
	return &setting, nil
}

// GetInt returns the integer value for key, or fallback if the key is
// missing or malformed.
func (s *SettingsService) GetInt(key string, fallback int) int {
	setting, err := s.Get(key)
	if err != nil {
		return fallback
	}
	value, err := strconv.Atoi(setting.Value)
	if err != nil {
		return fallback
	}
	return value
}

// Set updates a setting's value; the key must have been seeded.
func (s *SettingsService) Set(key, value string) (*models.AppSetting, error) {
	setting, err := s.Get(key)
	if err != nil {
		return nil, err
	}

	if setting.Type == "int" {
		if _, err := strconv.Atoi(value); err != nil {
			return nil, response.NewValidation("value must be an integer")
		}
	}
	if setting.Type == "bool" && value != "true" && value != "false" {
		return nil, response.NewValidation("value must be true or false")
	}

	setting.Value = value
	if err := s.db.Save(setting).Error; err != nil {
		return nil, err
	}
	return setting, nil
}
