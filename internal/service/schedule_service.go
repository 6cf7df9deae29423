package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
)

type WeekSummary struct {
	WeekStart      string        `json:"weekStart"`
	WeekEnd        string        `json:"weekEnd"`
	WeekDisplay    string        `json:"weekDisplay"`
	AvailableSlots int           `json:"availableSlots"`
	TotalSlots     int           `json:"totalSlots"`
	ScheduleID     string        `json:"scheduleId"`
	Slots          []models.Slot `json:"slots"`
}

// ExpiryPolicy decides when an abandoned pending reservation may be
// reclaimed. There is no inherent timeout on a hold: a user who never
// returns from checkout leaves the slot pending until an operator sweeps
// with a policy that says otherwise.
type ExpiryPolicy interface {
	Expired(slot models.Slot, now time.Time) bool
}

type neverExpire struct{}

func (neverExpire) Expired(models.Slot, time.Time) bool { return false }

// NeverExpire keeps pending holds forever. The default.
func NeverExpire() ExpiryPolicy { return neverExpire{} }

// MaxAgePolicy expires unpaid holds older than MaxAge.
type MaxAgePolicy struct {
	MaxAge time.Duration
}

func (p MaxAgePolicy) Expired(slot models.Slot, now time.Time) bool {
	if !slot.PaymentPending || slot.Paid || !slot.BookedAt.Valid {
		return false
	}
	return now.Sub(slot.BookedAt.Time) > p.MaxAge
}

type ScheduleService interface {
	ListUpcomingWeeks(ctx context.Context) ([]WeekSummary, error)
	ReserveSlot(ctx context.Context, userID, postID string, weekStart time.Time, slotNumber int) (*models.Schedule, *models.Post, error)
	ReleaseSlot(ctx context.Context, scheduleID string, slotNumber int, userID, postID string) error
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	SweepExpired(ctx context.Context) (int, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	postRepo     repository.PostRepository
	cfg          *config.Config
	expiry       ExpiryPolicy
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, postRepo repository.PostRepository, cfg *config.Config, expiry ExpiryPolicy) ScheduleService {
	if expiry == nil {
		expiry = NeverExpire()
	}
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		postRepo:     postRepo,
		cfg:          cfg,
		expiry:       expiry,
	}
}

// StartOfISOWeek returns the Monday 00:00 UTC of the week containing t.
func StartOfISOWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	t = t.AddDate(0, 0, -(weekday - 1))
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ListUpcomingWeeks materializes the next N bookable weeks starting from
// next Monday and derives each week's availability from its slot contents.
func (s *scheduleService) ListUpcomingWeeks(ctx context.Context) ([]WeekSummary, error) {
	weeksToList := s.cfg.WeeksToList
	if weeksToList < 1 {
		weeksToList = 4
	}

	nextMonday := StartOfISOWeek(time.Now()).AddDate(0, 0, 7)

	weeks := make([]WeekSummary, 0, weeksToList)
	for i := 0; i < weeksToList; i++ {
		weekStart := nextMonday.AddDate(0, 0, 7*i)

		schedule, err := s.scheduleRepo.GetOrCreateWeek(ctx, weekStart)
		if err != nil {
			return nil, err
		}

		weeks = append(weeks, WeekSummary{
			WeekStart:      schedule.WeekStartDate.Format("2006-01-02"),
			WeekEnd:        schedule.WeekEndDate.Format("2006-01-02"),
			WeekDisplay:    formatWeekDisplay(schedule.WeekStartDate, schedule.WeekEndDate),
			AvailableSlots: schedule.AvailableSlots(),
			TotalSlots:     models.SlotsPerWeek,
			ScheduleID:     schedule.ScheduleID,
			Slots:          schedule.Slots,
		})
	}

	return weeks, nil
}

func formatWeekDisplay(start, end time.Time) string {
	return start.Format("Jan 02") + " - " + end.Format("Jan 02, 2006")
}

// ReserveSlot places a provisional hold: the slot is hard-locked to the
// post, but the post itself stays draft until payment confirms, since the
// hold may be abandoned.
func (s *scheduleService) ReserveSlot(ctx context.Context, userID, postID string, weekStart time.Time, slotNumber int) (*models.Schedule, *models.Post, error) {
	post, err := s.postRepo.GetDraftByID(ctx, postID, userID)
	if err != nil {
		return nil, nil, err
	}

	if slotNumber < 1 || slotNumber > models.SlotsPerWeek {
		return nil, nil, fmt.Errorf("slot number %d: %w", slotNumber, models.ErrSlotInvalid)
	}

	schedule, err := s.scheduleRepo.GetOrCreateWeek(ctx, weekStart)
	if err != nil {
		return nil, nil, err
	}

	if err := s.scheduleRepo.ClaimSlot(ctx, schedule.ScheduleID, slotNumber, postID, userID); err != nil {
		return nil, nil, err
	}

	return schedule, post, nil
}

// ReleaseSlot clears a reservation and restores the post to a bookable
// state. Releasing an already-empty slot is a no-op success; releasing
// someone else's reservation is forbidden.
func (s *scheduleService) ReleaseSlot(ctx context.Context, scheduleID string, slotNumber int, userID, postID string) error {
	slot, err := s.scheduleRepo.GetSlot(ctx, scheduleID, slotNumber)
	if err != nil {
		return err
	}

	if !slot.PostID.Valid && !slot.UserID.Valid {
		return nil
	}

	if slot.PostID.String != postID || slot.UserID.String != userID {
		return fmt.Errorf("reservation belongs to another user: %w", models.ErrForbidden)
	}

	if err := s.scheduleRepo.ReleaseSlot(ctx, scheduleID, slotNumber, postID, userID); err != nil {
		return err
	}

	if err := s.postRepo.ResetToDraft(ctx, postID); err != nil {
		return err
	}

	return nil
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	return s.scheduleRepo.ListAll(ctx)
}

// SweepExpired releases pending holds the configured expiry policy
// considers abandoned. With the default never-expire policy this is a
// no-op; it exists so operators can reclaim stuck slots without guessing
// a timeout into the booking flow itself.
func (s *scheduleService) SweepExpired(ctx context.Context) (int, error) {
	schedules, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	released := 0
	for i := range schedules {
		for _, slot := range schedules[i].Slots {
			if !slot.PostID.Valid || !s.expiry.Expired(slot, now) {
				continue
			}

			err := s.ReleaseSlot(ctx, schedules[i].ScheduleID, slot.SlotNumber, slot.UserID.String, slot.PostID.String)
			if err != nil {
				if errors.Is(err, models.ErrForbidden) || errors.Is(err, models.ErrNotFound) {
					continue
				}
				return released, err
			}
			released++
		}
	}

	return released, nil
}
