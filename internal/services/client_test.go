package services

import (
	"testing"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/internal/utils"
	"github.com/gymgate/backend/pkg/response"
	"gorm.io/gorm"
)

func newTestClientService(t *testing.T) (*ClientService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	memberships := NewMembershipService(db, time.UTC)
	codes := NewAccessCodeService(db, time.UTC)
	return NewClientService(db, memberships, codes), db
}

func TestOnboard(t *testing.T) {
	svc, db := newTestClientService(t)

	gym := &models.Gym{Name: "Downtown", Code: "DT01", Active: true}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("Failed to seed gym: %v", err)
	}

	result, err := svc.Onboard(OnboardParams{
		GymID:         gym.ID,
		FirstName:     "Maria",
		LastName:      "Lopez",
		Document:      "30123456",
		Email:         "maria@example.com",
		Password:      "secret123",
		Kind:          models.KindMonthly,
		Price:         50,
		PaymentMethod: models.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}

	if result.Client == nil || result.Client.ID == 0 {
		t.Fatal("Onboard should create the client")
	}
	if result.Membership == nil || result.Membership.Status != models.MembershipActive {
		t.Fatal("Onboard should open an active membership")
	}
	if result.AccessCode == nil || !result.AccessCode.Active {
		t.Fatal("Onboard should mint an active access code")
	}
	if result.AccessCode.MembershipID != result.Membership.ID {
		t.Error("Minted code should be bound to the new membership")
	}

	// End date defaults to one month after start for a monthly membership.
	wantEnd := models.KindDuration(models.KindMonthly, result.Membership.StartDate)
	if !result.Membership.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, expected %v", result.Membership.EndDate, wantEnd)
	}

	// The stored password is a hash, never the plaintext.
	if result.Client.Password == "secret123" {
		t.Error("Password must not be stored as plaintext")
	}
	if !utils.CheckPassword("secret123", result.Client.Password) {
		t.Error("Stored hash should verify against the original password")
	}
}

func TestOnboard_PlanDefaults(t *testing.T) {
	svc, db := newTestClientService(t)

	gym := &models.Gym{Name: "Downtown", Code: "DT01", Active: true}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("Failed to seed gym: %v", err)
	}
	plan := &models.MembershipPlan{
		GymID:        gym.ID,
		Name:         "Annual",
		Kind:         models.KindAnnual,
		DurationDays: 365,
		Price:        400,
		Active:       true,
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to seed plan: %v", err)
	}

	result, err := svc.Onboard(OnboardParams{
		GymID:     gym.ID,
		FirstName: "Jorge",
		LastName:  "Diaz",
		PlanID:    &plan.ID,
	})
	if err != nil {
		t.Fatalf("Onboard failed: %v", err)
	}

	if result.Membership.Kind != models.KindAnnual {
		t.Errorf("Kind = %q, expected plan kind annual", result.Membership.Kind)
	}
	if result.Membership.Price != 400 {
		t.Errorf("Price = %v, expected plan price 400", result.Membership.Price)
	}
}

func TestOnboard_RollsBackOnMintFailure(t *testing.T) {
	svc, db := newTestClientService(t)

	gym := &models.Gym{Name: "Downtown", Code: "DT01", Active: true}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("Failed to seed gym: %v", err)
	}

	// A pre-existing code occupies the only value the generator will emit,
	// so the mint at the end of onboarding exhausts its retries.
	holder := seedExtraClient(t, db, gym.ID, "doc-holder")
	now := time.Now().UTC()
	held := seedMembership(t, db, holder.ID, models.MembershipActive,
		now, now.AddDate(0, 1, 0))
	taken := &models.AccessCode{
		ClientID:     holder.ID,
		MembershipID: held.ID,
		Code:         "EEEE000011112222",
		ExpiresAt:    held.EndDate,
		Active:       true,
	}
	if err := db.Create(taken).Error; err != nil {
		t.Fatalf("Failed to seed code: %v", err)
	}
	svc.codes.generate = func() (string, error) {
		return taken.Code, nil
	}

	_, err := svc.Onboard(OnboardParams{
		GymID:     gym.ID,
		FirstName: "Rollback",
		LastName:  "Case",
		Document:  "doc-rollback",
	})
	assertReason(t, err, response.ReasonExhausted)

	// Neither the client nor the membership may survive the failed mint.
	var clientCount int64
	db.Model(&models.Client{}).Where("first_name = ?", "Rollback").Count(&clientCount)
	if clientCount != 0 {
		t.Errorf("Client rows after failed onboarding = %d, expected 0", clientCount)
	}
	var membershipCount int64
	db.Model(&models.Membership{}).Where("client_id <> ?", holder.ID).Count(&membershipCount)
	if membershipCount != 0 {
		t.Errorf("Membership rows after failed onboarding = %d, expected 0", membershipCount)
	}
}

func TestOnboard_Validation(t *testing.T) {
	svc, db := newTestClientService(t)

	gym := &models.Gym{Name: "Downtown", Code: "DT01", Active: true}
	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("Failed to seed gym: %v", err)
	}

	tests := []struct {
		name   string
		params OnboardParams
		reason string
	}{
		{
			name:   "missing names",
			params: OnboardParams{GymID: gym.ID},
			reason: response.ReasonValidation,
		},
		{
			name:   "email without password",
			params: OnboardParams{GymID: gym.ID, FirstName: "A", LastName: "B", Email: "a@b.com"},
			reason: response.ReasonValidation,
		},
		{
			name:   "missing gym",
			params: OnboardParams{FirstName: "A", LastName: "B"},
			reason: response.ReasonValidation,
		},
		{
			name:   "unknown gym",
			params: OnboardParams{GymID: gym.ID + 999, FirstName: "A", LastName: "B"},
			reason: response.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Onboard(tt.params)
			assertReason(t, err, tt.reason)
		})
	}
}

func TestClientUpdate_HashesPassword(t *testing.T) {
	svc, db := newTestClientService(t)
	client := seedClient(t, db)

	updated, err := svc.Update(client.ID, map[string]interface{}{
		"phone":    "555-0100",
		"password": "newpass456",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Phone != "555-0100" {
		t.Errorf("Phone = %q, expected 555-0100", updated.Phone)
	}

	var reloaded models.Client
	db.First(&reloaded, client.ID)
	if reloaded.Password == "newpass456" {
		t.Error("Password must not be stored as plaintext")
	}
	if !utils.CheckPassword("newpass456", reloaded.Password) {
		t.Error("Stored hash should verify against the new password")
	}
}

func TestClientDelete(t *testing.T) {
	svc, db := newTestClientService(t)
	client := seedClient(t, db)

	if err := svc.Delete(client.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := svc.GetByID(client.ID)
	assertReason(t, err, response.ReasonNotFound)

	err = svc.Delete(client.ID)
	assertReason(t, err, response.ReasonNotFound)
}
