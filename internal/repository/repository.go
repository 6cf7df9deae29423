package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mddanishyusuf/listyouridea/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetDraftByID(ctx context.Context, postID, authorID string) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID, status string) ([]models.Post, error)
	GetPublished(ctx context.Context, category string, limit, offset int) ([]models.Post, error)
	Publish(ctx context.Context, postID string, scheduledWeek, publishedAt time.Time) error
	ResetToDraft(ctx context.Context, postID string) error
	ToggleLike(ctx context.Context, postID, userID string) (bool, int, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	DeleteByPostID(ctx context.Context, postID string) error
}

// ScheduleRepository owns the weekly slot calendars and their availability
// invariants. All slot writes are conditional updates so that concurrent
// requests cannot double-book: the claim predicate is "post_id IS NULL",
// paid/release predicates match the expected occupant.
type ScheduleRepository interface {
	GetOrCreateWeek(ctx context.Context, weekStart time.Time) (*models.Schedule, error)
	GetByID(ctx context.Context, scheduleID string) (*models.Schedule, error)
	GetSlot(ctx context.Context, scheduleID string, slotNumber int) (*models.Slot, error)
	ClaimSlot(ctx context.Context, scheduleID string, slotNumber int, postID, userID string) error
	MarkSlotPaid(ctx context.Context, scheduleID string, slotNumber int, postID, userID, sessionID string) error
	ReleaseSlot(ctx context.Context, scheduleID string, slotNumber int, postID, userID string) error
	ListAll(ctx context.Context) ([]models.Schedule, error)
}

type Repository struct {
	User     UserRepository
	Post     PostRepository
	Image    ImageRepository
	Schedule ScheduleRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Post:     NewPostRepository(db),
		Image:    NewImageRepository(db),
		Schedule: NewScheduleRepository(db),
	}
}
