package services

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/response"
)

var codeFormat = regexp.MustCompile(`^[0-9A-F]{16}$`)

func TestGenerateCode_Format(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("generateCode failed: %v", err)
		}
		if !codeFormat.MatchString(code) {
			t.Fatalf("Code %q does not match 16 uppercase hex chars", code)
		}
		if seen[code] {
			t.Fatalf("Code %q generated twice in 100 draws", code)
		}
		seen[code] = true
	}
}

func TestMint(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive,
		now, now.AddDate(0, 1, 0))

	code, err := svc.Mint(client.ID, membership.ID, nil)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if !codeFormat.MatchString(code.Code) {
		t.Errorf("Code = %q, expected 16 uppercase hex chars", code.Code)
	}
	if !code.Active {
		t.Error("Minted code should be active")
	}
	// With no explicit expiry the code mirrors the membership end date.
	if !code.ExpiresAt.Equal(membership.EndDate) {
		t.Errorf("ExpiresAt = %v, expected membership end date %v", code.ExpiresAt, membership.EndDate)
	}
}

func TestMint_ConcurrentUnique(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive,
		now, now.AddDate(0, 1, 0))

	const mints = 20
	var wg sync.WaitGroup
	codes := make(chan string, mints)
	errs := make(chan error, mints)
	for i := 0; i < mints; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := svc.Mint(client.ID, membership.ID, nil)
			if err != nil {
				errs <- err
				return
			}
			codes <- code.Code
		}()
	}
	wg.Wait()
	close(codes)
	close(errs)

	for err := range errs {
		t.Errorf("Mint failed under concurrency: %v", err)
	}

	seen := map[string]bool{}
	for code := range codes {
		if seen[code] {
			t.Errorf("Code %q minted twice", code)
		}
		seen[code] = true
	}
	if len(seen) != mints {
		t.Errorf("Minted %d distinct codes, expected %d", len(seen), mints)
	}

	var count int64
	db.Model(&models.AccessCode{}).Where("membership_id = ?", membership.ID).Count(&count)
	if count != mints {
		t.Errorf("Stored %d codes, expected %d", count, mints)
	}
}

func TestMint_ExhaustsRetryBudget(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive,
		now, now.AddDate(0, 1, 0))

	// Occupy the only value the generator will ever produce, so every
	// attempt collides.
	taken := &models.AccessCode{
		ClientID:     client.ID,
		MembershipID: membership.ID,
		Code:         "FFFF000011112222",
		ExpiresAt:    membership.EndDate,
		Active:       true,
	}
	if err := db.Create(taken).Error; err != nil {
		t.Fatalf("Failed to seed code: %v", err)
	}

	attempts := 0
	svc.generate = func() (string, error) {
		attempts++
		return taken.Code, nil
	}

	_, err := svc.Mint(client.ID, membership.ID, nil)
	assertReason(t, err, response.ReasonExhausted)
	if attempts != maxMintAttempts {
		t.Errorf("Generator called %d times, expected %d", attempts, maxMintAttempts)
	}
}

func TestMint_Errors(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)
	other := &models.Client{GymID: client.GymID, FirstName: "Luis", LastName: "Perez", Document: "other-doc"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("Failed to seed second client: %v", err)
	}

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive,
		now, now.AddDate(0, 1, 0))

	tests := []struct {
		name         string
		clientID     uint
		membershipID uint
		reason       string
	}{
		{"zero ids", 0, 0, response.ReasonValidation},
		{"unknown client", client.ID + 999, membership.ID, response.ReasonNotFound},
		{"unknown membership", client.ID, membership.ID + 999, response.ReasonNotFound},
		{"membership of another client", other.ID, membership.ID, response.ReasonValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Mint(tt.clientID, tt.membershipID, nil)
			var appErr *response.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T: %v", err, err)
			}
			if appErr.Reason != tt.reason {
				t.Errorf("Reason = %q, expected %q", appErr.Reason, tt.reason)
			}
		})
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive,
		now, now.AddDate(0, 1, 0))

	minted, err := svc.Mint(client.ID, membership.ID, nil)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	validated, err := svc.Validate(minted.Code)
	if err != nil {
		t.Fatalf("Validate failed for freshly minted code: %v", err)
	}
	if validated.Client == nil || validated.Client.ID != client.ID {
		t.Error("Validate should preload the client")
	}
	if validated.Membership == nil || validated.Membership.ID != membership.ID {
		t.Error("Validate should preload the membership")
	}
}

func TestValidate_Gates(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Validate("DOESNOTEXIST0000")
		assertReason(t, err, response.ReasonNotFound)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := svc.Validate("")
		assertReason(t, err, response.ReasonValidation)
	})

	t.Run("inactive code", func(t *testing.T) {
		membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))
		minted, err := svc.Mint(client.ID, membership.ID, nil)
		if err != nil {
			t.Fatalf("Mint failed: %v", err)
		}
		if _, err := svc.DeactivateForMembership(membership.ID); err != nil {
			t.Fatalf("DeactivateForMembership failed: %v", err)
		}
		_, err = svc.Validate(minted.Code)
		assertReason(t, err, response.ReasonInactive)
	})

	t.Run("membership not active", func(t *testing.T) {
		membership := seedMembership(t, db, client.ID, models.MembershipCancelled, now, now.AddDate(0, 1, 0))
		code := &models.AccessCode{
			ClientID:     client.ID,
			MembershipID: membership.ID,
			Code:         "AAAA111122223333",
			ExpiresAt:    now.AddDate(0, 1, 0),
			Active:       true,
		}
		if err := db.Create(code).Error; err != nil {
			t.Fatalf("Failed to seed code: %v", err)
		}
		_, err := svc.Validate(code.Code)
		assertReason(t, err, response.ReasonMembershipInactive)
	})

	t.Run("membership past its final day", func(t *testing.T) {
		overdue := seedExtraClient(t, db, client.GymID, "doc-gate-overdue")
		membership := seedMembership(t, db, overdue.ID, models.MembershipActive,
			now.AddDate(0, -2, 0), now.AddDate(0, 0, -1))
		code := &models.AccessCode{
			ClientID:     overdue.ID,
			MembershipID: membership.ID,
			Code:         "BBBB111122223333",
			ExpiresAt:    membership.EndDate,
			Active:       true,
		}
		if err := db.Create(code).Error; err != nil {
			t.Fatalf("Failed to seed code: %v", err)
		}
		_, err := svc.Validate(code.Code)
		assertReason(t, err, response.ReasonExpired)
	})

	t.Run("membership ending today admits all day", func(t *testing.T) {
		today := seedExtraClient(t, db, client.GymID, "doc-gate-today")
		membership := seedMembership(t, db, today.ID, models.MembershipActive,
			now.AddDate(0, -1, 0), now)
		code := &models.AccessCode{
			ClientID:     today.ID,
			MembershipID: membership.ID,
			Code:         "CCCC111122223333",
			ExpiresAt:    membership.EndDate,
			Active:       true,
		}
		if err := db.Create(code).Error; err != nil {
			t.Fatalf("Failed to seed code: %v", err)
		}
		if _, err := svc.Validate(code.Code); err != nil {
			t.Errorf("Code should validate through the membership's final day, got %v", err)
		}
	})
}

func TestDeactivateForMembership_Idempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))

	if _, err := svc.Mint(client.ID, membership.ID, nil); err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := svc.Mint(client.ID, membership.ID, nil); err != nil {
		t.Fatalf("Second mint failed: %v", err)
	}

	affected, err := svc.DeactivateForMembership(membership.ID)
	if err != nil {
		t.Fatalf("DeactivateForMembership failed: %v", err)
	}
	if affected != 2 {
		t.Errorf("First deactivation affected %d codes, expected 2", affected)
	}

	affected, err = svc.DeactivateForMembership(membership.ID)
	if err != nil {
		t.Fatalf("Second DeactivateForMembership failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("Second deactivation affected %d codes, expected 0", affected)
	}
}

func TestDeactivateExpired(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccessCodeService(db, time.UTC)
	client := seedClient(t, db)

	now := time.Now().UTC()
	membership := seedMembership(t, db, client.ID, models.MembershipActive, now, now.AddDate(0, 1, 0))

	past := now.Add(-time.Hour)
	expired, err := svc.Mint(client.ID, membership.ID, &past)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	fresh, err := svc.Mint(client.ID, membership.ID, nil)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	affected, err := svc.DeactivateExpired(now)
	if err != nil {
		t.Fatalf("DeactivateExpired failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("DeactivateExpired affected %d codes, expected 1", affected)
	}

	var reloaded models.AccessCode
	db.First(&reloaded, expired.ID)
	if reloaded.Active {
		t.Error("Code past its expiry should be inactive")
	}
	var reloadedFresh models.AccessCode
	if err := db.First(&reloadedFresh, fresh.ID).Error; err != nil {
		t.Fatalf("Reloading fresh code failed: %v", err)
	}
	if !reloadedFresh.Active {
		t.Error("Code before its expiry should stay active")
	}
}

// assertReason fails unless err is an AppError carrying the given reason.
func assertReason(t *testing.T, err error, reason string) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError, got %T: %v", err, err)
	}
	if appErr.Reason != reason {
		t.Errorf("Reason = %q, expected %q", appErr.Reason, reason)
	}
}
