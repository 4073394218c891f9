package main

import (
	"time"

	"github.com/gymgate/backend/internal/config"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/services"
	"github.com/gymgate/backend/internal/utils"
	"github.com/gymgate/backend/pkg/logger"
)

// appServices holds all initialized services needed by the application.
type appServices struct {
	hub           *services.NotificationHub
	memberships   *services.MembershipService
	codes         *services.AccessCodeService
	notifications *services.NotificationService
	sweeper       *services.SweeperService
	clients       *services.ClientService
	auth          *services.AuthService
	plans         *services.PlanService
	gyms          *services.GymService
	trainers      *services.TrainerService
	attendance    *services.AttendanceService
	settings      *services.SettingsService
}

// bootstrap initializes all application dependencies: database, services,
// the sweep scheduler and the default admin account.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	db := models.GetDB()

	loc, err := time.LoadLocation(cfg.Sweeper.Timezone)
	if err != nil {
		logger.Warn().Err(err).Str("timezone", cfg.Sweeper.Timezone).Msg("Invalid sweeper timezone, falling back to UTC")
		loc = time.UTC
	}

	hub := services.NewNotificationHub()
	memberships := services.NewMembershipService(db, loc)
	codes := services.NewAccessCodeService(db, loc)
	notifications := services.NewNotificationService(db, hub)
	sweeper := services.NewSweeperService(db, memberships, codes, notifications, cfg.Sweeper, loc)
	clients := services.NewClientService(db, memberships, codes)
	auth := services.NewAuthService(db, &cfg.JWT)

	if err := auth.EnsureDefaultAdmin(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create default admin")
	}

	sweeper.StartScheduler()

	return &appServices{
		hub:           hub,
		memberships:   memberships,
		codes:         codes,
		notifications: notifications,
		sweeper:       sweeper,
		clients:       clients,
		auth:          auth,
		plans:         services.NewPlanService(db),
		gyms:          services.NewGymService(db),
		trainers:      services.NewTrainerService(db),
		attendance:    services.NewAttendanceService(db, codes),
		settings:      services.NewSettingsService(db),
	}
}

// shutdown gracefully stops background work.
func (s *appServices) shutdown() {
	s.sweeper.StopScheduler()
	logger.Info().Msg("Sweep scheduler stopped")
}
