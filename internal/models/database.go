package models

import (
	"fmt"

	"github.com/gymgate/backend/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Map driver-specific unique violations to gorm.ErrDuplicatedKey so
		// the access-code mint retry can detect collisions portably.
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	err := DB.AutoMigrate(
		&Gym{},
		&Admin{},
		&Client{},
		&Trainer{},
		&MembershipPlan{},
		&Membership{},
		&AccessCode{},
		&Notification{},
		&Attendance{},
		&AppSetting{},
	)
	if err != nil {
		return err
	}
	return EnsureIndexes(DB)
}

// EnsureIndexes creates constraints AutoMigrate cannot express. The partial
// unique index is the database-level backstop for the at-most-one-active
// membership rule: two renewal transactions racing at READ COMMITTED cannot
// both commit an active row. MySQL has no partial indexes, so there the
// demote-then-insert transaction remains the only guard.
func EnsureIndexes(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite", "postgres":
		return db.Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_one_active ON memberships(client_id) WHERE status = 'active' AND deleted_at IS NULL",
		).Error
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates default settings and plan templates if absent.
func SeedDefaultData() error {
	defaultSettings := []AppSetting{
		{Key: SettingExpiryNoticeDays, Value: "5", Type: "int", Group: "sweeper", Label: "Days before expiry to notify"},
		{Key: SettingSweepTimezone, Value: "UTC", Type: "string", Group: "sweeper", Label: "Time zone for day-level expiry checks"},
	}

	for _, setting := range defaultSettings {
		var count int64
		DB.Model(&AppSetting{}).Where("`key` = ?", setting.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&setting).Error; err != nil {
				return err
			}
		}
	}

	var gymCount int64
	DB.Model(&Gym{}).Count(&gymCount)
	if gymCount == 0 {
		defaultGym := Gym{
			Name:   "Main Gym",
			Code:   "MAIN",
			Active: true,
		}
		if err := DB.Create(&defaultGym).Error; err != nil {
			return err
		}

		defaultPlans := []MembershipPlan{
			{GymID: defaultGym.ID, Name: "Monthly", Kind: KindMonthly, DurationDays: 30, Active: true},
			{GymID: defaultGym.ID, Name: "Quarterly", Kind: KindQuarterly, DurationDays: 90, Active: true},
			{GymID: defaultGym.ID, Name: "Semiannual", Kind: KindSemiannual, DurationDays: 180, Active: true},
			{GymID: defaultGym.ID, Name: "Annual", Kind: KindAnnual, DurationDays: 365, Active: true},
		}
		for _, plan := range defaultPlans {
			if err := DB.Create(&plan).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
