package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gymgate/backend/internal/config"
	"github.com/gymgate/backend/internal/models"
	"github.com/gymgate/backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// SweepResult summarizes one reconciliation pass.
type SweepResult struct {
	MembershipsExpired   int64 `json:"memberships_expired"`
	CodesExpired         int64 `json:"codes_expired"`
	CodesOrphaned        int64 `json:"codes_orphaned"`
	NotificationsCreated int   `json:"notifications_created"`
}

// SweeperService runs the periodic reconciliation pass that keeps membership
// and access-code state consistent with wall-clock time. Each step is
// independently idempotent, so a pass that fails partway is safe to resume
// from the top on the next run.
type SweeperService struct {
	db            *gorm.DB
	memberships   *MembershipService
	codes         *AccessCodeService
	notifications *NotificationService
	cfg           config.SweeperConfig
	loc           *time.Location
	scheduler     *cron.Cron
}

func NewSweeperService(
	db *gorm.DB,
	memberships *MembershipService,
	codes *AccessCodeService,
	notifications *NotificationService,
	cfg config.SweeperConfig,
	loc *time.Location,
) *SweeperService {
	if loc == nil {
		loc = time.UTC
	}
	return &SweeperService{
		db:            db,
		memberships:   memberships,
		codes:         codes,
		notifications: notifications,
		cfg:           cfg,
		loc:           loc,
	}
}

// StartScheduler schedules the sweep in the configured time zone and
// optionally runs one pass immediately.
func (s *SweeperService) StartScheduler() {
	s.scheduler = cron.New(cron.WithLocation(s.loc))

	if _, err := s.scheduler.AddFunc(s.cfg.Schedule, s.runScheduled); err != nil {
		logger.Error().Err(err).Str("schedule", s.cfg.Schedule).Msg("[Sweeper] Failed to add cron job")
		return
	}

	s.scheduler.Start()
	logger.Info().
		Str("schedule", s.cfg.Schedule).
		Str("timezone", s.loc.String()).
		Msg("[Sweeper] Scheduler started")

	if s.cfg.RunOnStart {
		go s.runScheduled()
	}
}

// StopScheduler stops the cron scheduler. A pass already running completes.
func (s *SweeperService) StopScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// runScheduled executes one pass and swallows any failure: a broken pass must
// not take down the scheduler, the next run retries naturally.
func (s *SweeperService) runScheduled() {
	result, err := s.Sweep(time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("[Sweeper] Pass failed, will retry on next run")
		return
	}
	logger.Info().
		Int64("memberships_expired", result.MembershipsExpired).
		Int64("codes_expired", result.CodesExpired).
		Int64("codes_orphaned", result.CodesOrphaned).
		Int("notifications_created", result.NotificationsCreated).
		Msg("[Sweeper] Pass completed")
}

// Sweep runs the four reconciliation steps in order:
//
//  1. expire overdue memberships
//  2. deactivate codes past their own expiry timestamp
//  3. deactivate codes bound to any non-active membership
//  4. record and publish upcoming-expiry notifications
//
// Step 3 depends on step 1's effects being visible, so the steps run
// sequentially, never fanned out.
func (s *SweeperService) Sweep(now time.Time) (*SweepResult, error) {
	result := &SweepResult{}

	expired, err := s.memberships.ExpireOverdue(now)
	if err != nil {
		return result, fmt.Errorf("expire overdue memberships: %w", err)
	}
	result.MembershipsExpired = expired

	codesExpired, err := s.codes.DeactivateExpired(now)
	if err != nil {
		return result, fmt.Errorf("deactivate expired codes: %w", err)
	}
	result.CodesExpired = codesExpired

	inactiveIDs, err := s.memberships.InactiveIDs()
	if err != nil {
		return result, fmt.Errorf("collect inactive memberships: %w", err)
	}
	orphaned, err := s.codes.DeactivateForMemberships(inactiveIDs)
	if err != nil {
		return result, fmt.Errorf("deactivate orphaned codes: %w", err)
	}
	result.CodesOrphaned = orphaned

	created, err := s.notifyUpcomingExpiries(now)
	if err != nil {
		return result, fmt.Errorf("upcoming expiry notifications: %w", err)
	}
	result.NotificationsCreated = created

	return result, nil
}

// notifyUpcomingExpiries creates one unread upcoming-expiry notification per
// membership inside the notice window, skipping memberships that already
// have one, and publishes each created notification to the hub.
func (s *SweeperService) notifyUpcomingExpiries(now time.Time) (int, error) {
	window := time.Duration(s.noticeDays()) * 24 * time.Hour

	expiring, err := s.memberships.ExpiringWithin(now, window)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range expiring {
		membership := &expiring[i]

		exists, err := s.notifications.HasUnread(membership.ID, models.NotifyMembershipUpcomingExpiry)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		remaining := daysRemaining(now, membership.EndDate)
		clientName := ""
		if membership.Client != nil {
			clientName = membership.Client.FullName()
		}

		membershipID := membership.ID
		dueDate := membership.EndDate
		notification := &models.Notification{
			ClientID:      membership.ClientID,
			MembershipID:  &membershipID,
			Kind:          models.NotifyMembershipUpcomingExpiry,
			Title:         fmt.Sprintf("Membership expiring soon - %s", clientName),
			Message:       fmt.Sprintf("The %s membership expires in %d day(s)", membership.Kind, remaining),
			DueDate:       &dueDate,
			DaysRemaining: &remaining,
		}

		full, err := s.notifications.Record(notification)
		if err != nil {
			return created, err
		}
		s.notifications.Publish(full)
		created++
	}

	return created, nil
}

// noticeDays reads the notice window from settings, falling back to the
// configured default.
func (s *SweeperService) noticeDays() int {
	var setting models.AppSetting
	if err := s.db.Where("`key` = ?", models.SettingExpiryNoticeDays).First(&setting).Error; err == nil {
		if days, err := strconv.Atoi(setting.Value); err == nil && days > 0 {
			return days
		}
	}
	if s.cfg.ExpiryNoticeDays > 0 {
		return s.cfg.ExpiryNoticeDays
	}
	return 5
}
