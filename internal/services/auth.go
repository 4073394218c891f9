package services

import (
	"errors"
	"time"

	"github.com/gymgate/backend/internal/config"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/utils"
	"github.com/gymgate/backend/pkg/logger"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

// AuthService authenticates back-office admins. Passwords are always
// compared against a salted bcrypt hash; plaintext comparison is never used.
type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtConfig: jwtCfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token    string        `json:"token"`
	Admin    *models.Admin `json:"admin"`
	ExpireAt time.Time     `json:"expire_at"`
}

// Login authenticates an admin and issues a JWT.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	var admin models.Admin
	err := s.db.Where("email = ? AND active = ?", req.Email, true).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		return nil, response.NewUnauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email, admin.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin.LastLogin = &now
	s.db.Save(&admin)

	return &LoginResult{
		Token:    token,
		Admin:    &admin,
		ExpireAt: now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

// GetAdmin returns an admin by id.
func (s *AuthService) GetAdmin(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.Preload("Gym").First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("admin not found")
		}
		return nil, err
	}
	return &admin, nil
}

// EnsureDefaultAdmin creates the initial super admin when the table is
// empty, so a fresh deployment can log in.
func (s *AuthService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.Admin{
		Name:     "Administrator",
		Email:    "admin@gymgate.local",
		Password: hashed,
		Role:     models.RoleSuperAdmin,
		Active:   true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Warn().Str("email", admin.Email).Msg("Created default super admin, change its password")
	return nil
}
