package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mddanishyusuf/listyouridea/internal/models"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepositoryImpl {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, uid, email, name, username, photo_url, api_key, created_at)
		VALUES (:user_id, :uid, :email, :name, :username, :photo_url, :api_key, :created_at)
	`

	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByUID resolves the auth provider's opaque identifier to an internal
// user.
func (r *UserRepositoryImpl) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	query := `SELECT * FROM users WHERE uid = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with uid %s: %w", uid, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT * FROM users WHERE user_id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
