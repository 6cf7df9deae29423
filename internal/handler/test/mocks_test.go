package test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/service"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetOrCreateProfile(ctx context.Context, req service.ProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID string, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetMyPosts(ctx context.Context, authorID, status string) ([]models.Post, error) {
	args := m.Called(ctx, authorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPublicFeed(ctx context.Context, category string, limit, page int) ([]models.Post, error) {
	args := m.Called(ctx, category, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) ListUpcomingWeeks(ctx context.Context) ([]service.WeekSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.WeekSummary), args.Error(1)
}

func (m *MockScheduleService) ReserveSlot(ctx context.Context, userID, postID string, weekStart time.Time, slotNumber int) (*models.Schedule, *models.Post, error) {
	args := m.Called(ctx, userID, postID, weekStart, slotNumber)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Schedule), args.Get(1).(*models.Post), args.Error(2)
}

func (m *MockScheduleService) ReleaseSlot(ctx context.Context, scheduleID string, slotNumber int, userID, postID string) error {
	args := m.Called(ctx, scheduleID, slotNumber, userID, postID)
	return args.Error(0)
}

func (m *MockScheduleService) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Schedule), args.Error(1)
}

func (m *MockScheduleService) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) BookSlot(ctx context.Context, user *models.User, postID string, weekStart time.Time, slotNumber int) (*service.BookingCheckout, error) {
	args := m.Called(ctx, user, postID, weekStart, slotNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingCheckout), args.Error(1)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, userID, sessionID, scheduleID string, slotNumber int, postID string) (*service.BookingConfirmation, error) {
	args := m.Called(ctx, userID, sessionID, scheduleID, slotNumber, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingConfirmation), args.Error(1)
}

func (m *MockBookingService) CancelPending(ctx context.Context, userID, scheduleID string, slotNumber int, postID string) error {
	args := m.Called(ctx, userID, scheduleID, slotNumber, postID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, userID, fileName, contentType string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, userID, fileName, contentType, file, size)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
