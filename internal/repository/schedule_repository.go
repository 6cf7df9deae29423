package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mddanishyusuf/listyouridea/internal/models"
)

type ScheduleRepositoryImpl struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepositoryImpl {
	return &ScheduleRepositoryImpl{db: db}
}

// uniqueViolation is the Postgres error code for a duplicate key.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// GetOrCreateWeek finds the schedule whose week_start_date falls on the
// same calendar day as weekStart, creating it with 10 empty slots when
// missing. Creation races on the unique week_start_date index; the loser
// re-reads the winner's row.
func (r *ScheduleRepositoryImpl) GetOrCreateWeek(ctx context.Context, weekStart time.Time) (*models.Schedule, error) {
	day := weekStart.UTC().Truncate(24 * time.Hour)

	schedule, err := r.getByDay(ctx, day)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up schedule: %w", err)
	}

	created, err := r.createWeek(ctx, day)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the creation race; the week exists now.
			schedule, err = r.getByDay(ctx, day)
			if err != nil {
				return nil, fmt.Errorf("failed to re-read schedule after duplicate key: %w", err)
			}
			return schedule, nil
		}
		return nil, err
	}

	return created, nil
}

func (r *ScheduleRepositoryImpl) getByDay(ctx context.Context, day time.Time) (*models.Schedule, error) {
	query := `
		SELECT schedule_id, week_start_date, week_end_date, created_at
		FROM schedules
		WHERE week_start_date >= $1 AND week_start_date < $2
	`

	var schedule models.Schedule
	err := r.db.GetContext(ctx, &schedule, query, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	if err := r.loadSlots(ctx, &schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) createWeek(ctx context.Context, weekStart time.Time) (*models.Schedule, error) {
	schedule := &models.Schedule{
		ScheduleID:    uuid.New().String(),
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 7).Add(-time.Second),
		CreatedAt:     time.Now(),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO schedules (schedule_id, week_start_date, week_end_date, created_at)
		VALUES ($1, $2, $3, $4)
	`, schedule.ScheduleID, schedule.WeekStartDate, schedule.WeekEndDate, schedule.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	for i := 1; i <= models.SlotsPerWeek; i++ {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO schedule_slots (schedule_id, slot_number, payment_amount)
			VALUES ($1, $2, $3)
		`, schedule.ScheduleID, i, models.DefaultSlotPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to create slot %d: %w", i, err)
		}
		schedule.Slots = append(schedule.Slots, models.Slot{
			ScheduleID:    schedule.ScheduleID,
			SlotNumber:    i,
			PaymentAmount: models.DefaultSlotPrice,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule creation: %w", err)
	}

	return schedule, nil
}

func (r *ScheduleRepositoryImpl) GetByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	query := `
		SELECT schedule_id, week_start_date, week_end_date, created_at
		FROM schedules
		WHERE schedule_id = $1
	`

	var schedule models.Schedule
	err := r.db.GetContext(ctx, &schedule, query, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %s: %w", scheduleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if err := r.loadSlots(ctx, &schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) loadSlots(ctx context.Context, schedule *models.Schedule) error {
	query := `
		SELECT schedule_id, slot_number, post_id, user_id, booked_at,
		       paid, payment_pending, payment_amount, payment_session_id
		FROM schedule_slots
		WHERE schedule_id = $1
		ORDER BY slot_number
	`

	err := r.db.SelectContext(ctx, &schedule.Slots, query, schedule.ScheduleID)
	if err != nil {
		return fmt.Errorf("failed to load slots: %w", err)
	}

	return nil
}

func (r *ScheduleRepositoryImpl) GetSlot(ctx context.Context, scheduleID string, slotNumber int) (*models.Slot, error) {
	query := `
		SELECT schedule_id, slot_number, post_id, user_id, booked_at,
		       paid, payment_pending, payment_amount, payment_session_id
		FROM schedule_slots
		WHERE schedule_id = $1 AND slot_number = $2
	`

	var slot models.Slot
	err := r.db.GetContext(ctx, &slot, query, scheduleID, slotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %d of schedule %s: %w", slotNumber, scheduleID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return &slot, nil
}

// ClaimSlot places a provisional hold on a slot. The update is predicated
// on the slot being unoccupied, so under concurrent claims exactly one
// caller wins; the rest see ErrSlotTaken.
func (r *ScheduleRepositoryImpl) ClaimSlot(ctx context.Context, scheduleID string, slotNumber int, postID, userID string) error {
	query := `
		UPDATE schedule_slots
		SET post_id = $3,
		    user_id = $4,
		    booked_at = $5,
		    paid = FALSE,
		    payment_pending = TRUE
		WHERE schedule_id = $1 AND slot_number = $2 AND post_id IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, scheduleID, slotNumber, postID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to claim slot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check claimed rows: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrSlotTaken
	}

	return nil
}

// MarkSlotPaid confirms payment on a held slot. Conditioned on the expected
// occupant, so re-running after a crash is a harmless no-op update.
func (r *ScheduleRepositoryImpl) MarkSlotPaid(ctx context.Context, scheduleID string, slotNumber int, postID, userID, sessionID string) error {
	query := `
		UPDATE schedule_slots
		SET paid = TRUE,
		    payment_pending = FALSE,
		    payment_session_id = $5
		WHERE schedule_id = $1 AND slot_number = $2 AND post_id = $3 AND user_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, scheduleID, slotNumber, postID, userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to mark slot paid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("slot %d occupant changed: %w", slotNumber, models.ErrNotFound)
	}

	return nil
}

// ReleaseSlot clears a reservation. Conditioned on the expected occupant;
// zero rows affected means the slot was already released, which callers
// treat as success (the cancel callback may fire more than once).
func (r *ScheduleRepositoryImpl) ReleaseSlot(ctx context.Context, scheduleID string, slotNumber int, postID, userID string) error {
	query := `
		UPDATE schedule_slots
		SET post_id = NULL,
		    user_id = NULL,
		    booked_at = NULL,
		    paid = FALSE,
		    payment_pending = FALSE,
		    payment_session_id = NULL
		WHERE schedule_id = $1 AND slot_number = $2 AND post_id = $3 AND user_id = $4
	`

	_, err := r.db.ExecContext(ctx, query, scheduleID, slotNumber, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}

	return nil
}

func (r *ScheduleRepositoryImpl) ListAll(ctx context.Context) ([]models.Schedule, error) {
	query := `
		SELECT schedule_id, week_start_date, week_end_date, created_at
		FROM schedules
		ORDER BY week_start_date
	`

	var schedules []models.Schedule
	err := r.db.SelectContext(ctx, &schedules, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	for i := range schedules {
		if err := r.loadSlots(ctx, &schedules[i]); err != nil {
			return nil, err
		}
	}

	return schedules, nil
}
