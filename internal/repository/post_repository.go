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

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(post_id, author_id, title, description, logo_url, category, product_url, status, created_at, updated_at)
		VALUES
		(:post_id, :author_id, :title, :description, :logo_url, :category, :product_url, :status, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.Status == "" {
		post.Status = models.StatusDraft
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// GetDraftByID returns the post only when it belongs to the author and is
// still draft. One query answers the booking precondition: a post already
// scheduled or published, or owned by someone else, is simply not found.
func (r *PostRepositoryImpl) GetDraftByID(ctx context.Context, postID, authorID string) (*models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE post_id = $1 AND author_id = $2 AND status = $3
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID, authorID, models.StatusDraft)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post not found or already scheduled: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID, status string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	args := []interface{}{authorID}

	if status != "" {
		query = `SELECT * FROM posts WHERE author_id = $1 AND status = $2 ORDER BY created_at DESC`
		args = append(args, status)
	}

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get author posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetPublished(ctx context.Context, category string, limit, offset int) ([]models.Post, error) {
	query := `
		SELECT * FROM posts
		WHERE status = $1
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`
	args := []interface{}{models.StatusPublished, limit, offset}

	if category != "" && category != "all" {
		query = `
			SELECT * FROM posts
			WHERE status = $1 AND category = $4
			ORDER BY published_at DESC NULLS LAST, created_at DESC
			LIMIT $2 OFFSET $3
		`
		args = append(args, category)
	}

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get published posts: %w", err)
	}

	return posts, nil
}

// Publish flips the post to published with the confirmed week. Not guarded
// on the current status: payment confirmation may be re-run after a crash
// and re-setting the same values must stay a no-op.
func (r *PostRepositoryImpl) Publish(ctx context.Context, postID string, scheduledWeek, publishedAt time.Time) error {
	query := `
		UPDATE posts
		SET status = $2,
		    scheduled_week = $3,
		    published_at = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, postID, models.StatusPublished, scheduledWeek, publishedAt)
	if err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

// ResetToDraft restores a post to a bookable state after a cancelled or
// released reservation.
func (r *PostRepositoryImpl) ResetToDraft(ctx context.Context, postID string) error {
	query := `
		UPDATE posts
		SET status = $2,
		    scheduled_week = NULL,
		    published_at = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, postID, models.StatusDraft)
	if err != nil {
		return fmt.Errorf("failed to reset post to draft: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check deleted rows: %w", err)
	}

	liked := false
	if deleted == 0 {
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("failed to add like: %w", err)
		}
		liked = true
	}

	var count int
	err = r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return liked, count, nil
}
