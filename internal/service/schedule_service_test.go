package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:     "http://localhost:8080",
		SlotPrice:   29,
		WeeksToList: 4,
	}
}

func emptySchedule(id string, weekStart time.Time) *models.Schedule {
	schedule := &models.Schedule{
		ScheduleID:    id,
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 7).Add(-time.Second),
	}
	for i := 1; i <= models.SlotsPerWeek; i++ {
		schedule.Slots = append(schedule.Slots, models.Slot{
			ScheduleID:    id,
			SlotNumber:    i,
			PaymentAmount: models.DefaultSlotPrice,
		})
	}
	return schedule
}

func holdSlot(schedule *models.Schedule, slotNumber int, postID, userID string) {
	slot := &schedule.Slots[slotNumber-1]
	slot.PostID = sql.NullString{String: postID, Valid: true}
	slot.UserID = sql.NullString{String: userID, Valid: true}
	slot.BookedAt = sql.NullTime{Time: time.Now(), Valid: true}
	slot.Paid = false
	slot.PaymentPending = true
}

func TestStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "Wednesday maps to its Monday",
			input: time.Date(2025, 9, 3, 15, 30, 0, 0, time.UTC),
			want:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Monday maps to itself",
			input: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "Sunday belongs to the preceding Monday",
			input: time.Date(2025, 9, 7, 23, 59, 0, 0, time.UTC),
			want:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfISOWeek(tt.input))
		})
	}
}

func TestListUpcomingWeeks(t *testing.T) {
	scheduleRepo := new(MockScheduleRepository)
	postRepo := new(MockPostRepository)

	weekStart := StartOfISOWeek(time.Now()).AddDate(0, 0, 7)
	schedule := emptySchedule("sched-1", weekStart)
	holdSlot(schedule, 3, "post-1", "user-1")

	scheduleRepo.On("GetOrCreateWeek", mock.Anything, mock.Anything).
		Return(schedule, nil).Times(4)

	svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

	weeks, err := svc.ListUpcomingWeeks(context.Background())

	require.NoError(t, err)
	require.Len(t, weeks, 4)
	assert.Equal(t, 9, weeks[0].AvailableSlots)
	assert.Equal(t, models.SlotsPerWeek, weeks[0].TotalSlots)
	assert.Equal(t, "sched-1", weeks[0].ScheduleID)
	assert.Len(t, weeks[0].Slots, models.SlotsPerWeek)
	scheduleRepo.AssertExpectations(t)
}

func TestReserveSlot(t *testing.T) {
	weekStart := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	draftPost := &models.Post{
		PostID:   "post-1",
		AuthorID: "user-1",
		Title:    "My Product",
		Status:   models.StatusDraft,
	}

	t.Run("claims a free slot and leaves the post draft", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		postRepo.On("GetDraftByID", mock.Anything, "post-1", "user-1").Return(draftPost, nil)
		scheduleRepo.On("GetOrCreateWeek", mock.Anything, weekStart).
			Return(emptySchedule("sched-1", weekStart), nil)
		scheduleRepo.On("ClaimSlot", mock.Anything, "sched-1", 3, "post-1", "user-1").Return(nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		schedule, post, err := svc.ReserveSlot(context.Background(), "user-1", "post-1", weekStart, 3)

		require.NoError(t, err)
		assert.Equal(t, "sched-1", schedule.ScheduleID)
		assert.Equal(t, models.StatusDraft, post.Status)
		postRepo.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		scheduleRepo.AssertExpectations(t)
	})

	t.Run("rejects an out-of-range slot number before touching the schedule", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		postRepo.On("GetDraftByID", mock.Anything, "post-1", "user-1").Return(draftPost, nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		_, _, err := svc.ReserveSlot(context.Background(), "user-1", "post-1", weekStart, 11)

		assert.ErrorIs(t, err, models.ErrSlotInvalid)
		scheduleRepo.AssertNotCalled(t, "GetOrCreateWeek", mock.Anything, mock.Anything)
	})

	t.Run("post not draft or not owned reads as not found", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		postRepo.On("GetDraftByID", mock.Anything, "post-1", "user-2").
			Return(nil, models.ErrNotFound)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		_, _, err := svc.ReserveSlot(context.Background(), "user-2", "post-1", weekStart, 3)

		assert.ErrorIs(t, err, models.ErrNotFound)
		scheduleRepo.AssertNotCalled(t, "ClaimSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("occupied slot fails with SlotTaken regardless of payment state", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		otherDraft := &models.Post{PostID: "post-2", AuthorID: "user-2", Status: models.StatusDraft}

		schedule := emptySchedule("sched-1", weekStart)
		holdSlot(schedule, 3, "post-1", "user-1")

		postRepo.On("GetDraftByID", mock.Anything, "post-2", "user-2").Return(otherDraft, nil)
		scheduleRepo.On("GetOrCreateWeek", mock.Anything, weekStart).Return(schedule, nil)
		scheduleRepo.On("ClaimSlot", mock.Anything, "sched-1", 3, "post-2", "user-2").
			Return(models.ErrSlotTaken)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		_, _, err := svc.ReserveSlot(context.Background(), "user-2", "post-2", weekStart, 3)

		assert.ErrorIs(t, err, models.ErrSlotTaken)
	})
}

func TestReleaseSlot(t *testing.T) {
	t.Run("clears the slot and resets the post", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		held := &models.Slot{
			ScheduleID:     "sched-1",
			SlotNumber:     3,
			PostID:         sql.NullString{String: "post-1", Valid: true},
			UserID:         sql.NullString{String: "user-1", Valid: true},
			PaymentPending: true,
		}

		scheduleRepo.On("GetSlot", mock.Anything, "sched-1", 3).Return(held, nil)
		scheduleRepo.On("ReleaseSlot", mock.Anything, "sched-1", 3, "post-1", "user-1").Return(nil)
		postRepo.On("ResetToDraft", mock.Anything, "post-1").Return(nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		err := svc.ReleaseSlot(context.Background(), "sched-1", 3, "user-1", "post-1")

		require.NoError(t, err)
		scheduleRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("already released slot is a no-op success", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		scheduleRepo.On("GetSlot", mock.Anything, "sched-1", 3).
			Return(&models.Slot{ScheduleID: "sched-1", SlotNumber: 3}, nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		err := svc.ReleaseSlot(context.Background(), "sched-1", 3, "user-1", "post-1")

		require.NoError(t, err)
		scheduleRepo.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		postRepo.AssertNotCalled(t, "ResetToDraft", mock.Anything, mock.Anything)
	})

	t.Run("someone else's reservation is forbidden", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		held := &models.Slot{
			ScheduleID: "sched-1",
			SlotNumber: 3,
			PostID:     sql.NullString{String: "post-1", Valid: true},
			UserID:     sql.NullString{String: "user-1", Valid: true},
		}

		scheduleRepo.On("GetSlot", mock.Anything, "sched-1", 3).Return(held, nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), nil)

		err := svc.ReleaseSlot(context.Background(), "sched-1", 3, "user-2", "post-1")

		assert.ErrorIs(t, err, models.ErrForbidden)
		scheduleRepo.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSweepExpired(t *testing.T) {
	weekStart := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)

	t.Run("default policy never reclaims", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		schedule := emptySchedule("sched-1", weekStart)
		holdSlot(schedule, 3, "post-1", "user-1")
		schedule.Slots[2].BookedAt = sql.NullTime{Time: time.Now().Add(-72 * time.Hour), Valid: true}

		scheduleRepo.On("ListAll", mock.Anything).Return([]models.Schedule{*schedule}, nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), NeverExpire())

		released, err := svc.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Zero(t, released)
		scheduleRepo.AssertNotCalled(t, "ReleaseSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("max-age policy releases stale pending holds", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		schedule := emptySchedule("sched-1", weekStart)
		holdSlot(schedule, 3, "post-1", "user-1")
		staleSlot := schedule.Slots[2]
		staleSlot.BookedAt = sql.NullTime{Time: time.Now().Add(-72 * time.Hour), Valid: true}
		schedule.Slots[2] = staleSlot

		scheduleRepo.On("ListAll", mock.Anything).Return([]models.Schedule{*schedule}, nil)
		scheduleRepo.On("GetSlot", mock.Anything, "sched-1", 3).Return(&staleSlot, nil)
		scheduleRepo.On("ReleaseSlot", mock.Anything, "sched-1", 3, "post-1", "user-1").Return(nil)
		postRepo.On("ResetToDraft", mock.Anything, "post-1").Return(nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), MaxAgePolicy{MaxAge: 24 * time.Hour})

		released, err := svc.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, released)
		scheduleRepo.AssertExpectations(t)
		postRepo.AssertExpectations(t)
	})

	t.Run("paid slots are never swept", func(t *testing.T) {
		scheduleRepo := new(MockScheduleRepository)
		postRepo := new(MockPostRepository)

		schedule := emptySchedule("sched-1", weekStart)
		holdSlot(schedule, 3, "post-1", "user-1")
		schedule.Slots[2].Paid = true
		schedule.Slots[2].PaymentPending = false
		schedule.Slots[2].BookedAt = sql.NullTime{Time: time.Now().Add(-72 * time.Hour), Valid: true}

		scheduleRepo.On("ListAll", mock.Anything).Return([]models.Schedule{*schedule}, nil)

		svc := NewScheduleService(scheduleRepo, postRepo, testConfig(), MaxAgePolicy{MaxAge: 24 * time.Hour})

		released, err := svc.SweepExpired(context.Background())

		require.NoError(t, err)
		assert.Zero(t, released)
	})
}
