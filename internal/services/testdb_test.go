package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gymgate/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB opens a per-test in-memory database with the full schema. The
// DSN is derived from the test name so parallel tests never share state.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Shared-cache sqlite returns busy errors under concurrent writers; a
	// single pooled connection serializes the writes instead.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Gym{},
		&models.Admin{},
		&models.Trainer{},
		&models.MembershipPlan{},
		&models.Client{},
		&models.Membership{},
		&models.AccessCode{},
		&models.Notification{},
		&models.Attendance{},
		&models.AppSetting{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := models.EnsureIndexes(db); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}

	return db
}

// seedClient inserts a gym and a client to hang memberships off.
func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()

	gym := &models.Gym{Name: "Test Gym", Code: "TEST", Active: true}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("Failed to seed gym: %v", err)
	}

	client := &models.Client{
		GymID:     gym.ID,
		FirstName: "Ana",
		LastName:  "Gomez",
		Document:  fmt.Sprintf("doc-%s", strings.ReplaceAll(t.Name(), "/", "-")),
		Active:    true,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}
	return client
}

// seedExtraClient adds another client to an existing gym.
func seedExtraClient(t *testing.T, db *gorm.DB, gymID uint, document string) *models.Client {
	t.Helper()

	client := &models.Client{
		GymID:     gymID,
		FirstName: "Leo",
		LastName:  "Martin",
		Document:  document,
		Active:    true,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to seed client: %v", err)
	}
	return client
}

// seedMembership inserts a membership directly, bypassing service validation.
func seedMembership(t *testing.T, db *gorm.DB, clientID uint, status string, start, end time.Time) *models.Membership {
	t.Helper()

	membership := &models.Membership{
		ClientID:  clientID,
		Kind:      models.KindMonthly,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("Failed to seed membership: %v", err)
	}
	return membership
}
