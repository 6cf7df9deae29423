package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/payment"
)

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetOrCreateWeek(ctx context.Context, weekStart time.Time) (*models.Schedule, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*models.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) GetSlot(ctx context.Context, scheduleID string, slotNumber int) (*models.Slot, error) {
	args := m.Called(ctx, scheduleID, slotNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Slot), args.Error(1)
}

func (m *MockScheduleRepository) ClaimSlot(ctx context.Context, scheduleID string, slotNumber int, postID, userID string) error {
	args := m.Called(ctx, scheduleID, slotNumber, postID, userID)
	return args.Error(0)
}

func (m *MockScheduleRepository) MarkSlotPaid(ctx context.Context, scheduleID string, slotNumber int, postID, userID, sessionID string) error {
	args := m.Called(ctx, scheduleID, slotNumber, postID, userID, sessionID)
	return args.Error(0)
}

func (m *MockScheduleRepository) ReleaseSlot(ctx context.Context, scheduleID string, slotNumber int, postID, userID string) error {
	args := m.Called(ctx, scheduleID, slotNumber, postID, userID)
	return args.Error(0)
}

func (m *MockScheduleRepository) ListAll(ctx context.Context) ([]models.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Schedule), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetDraftByID(ctx context.Context, postID, authorID string) (*models.Post, error) {
	args := m.Called(ctx, postID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByAuthorID(ctx context.Context, authorID, status string) ([]models.Post, error) {
	args := m.Called(ctx, authorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPublished(ctx context.Context, category string, limit, offset int) ([]models.Post, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Publish(ctx context.Context, postID string, scheduledWeek, publishedAt time.Time) error {
	args := m.Called(ctx, postID, scheduledWeek, publishedAt)
	return args.Error(0)
}

func (m *MockPostRepository) ResetToDraft(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockGateway) GetSessionStatus(ctx context.Context, sessionID string) (*payment.SessionStatus, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.SessionStatus), args.Error(1)
}
