package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
)

type ProfileRequest struct {
	UID         string `json:"-"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type UserService interface {
	GetOrCreateProfile(ctx context.Context, req ProfileRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetOrCreateProfile resolves the external uid to a user, creating the
// profile on first sign-in with a generated username and API key.
func (s *userService) GetOrCreateProfile(ctx context.Context, req ProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUID(ctx, req.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		UID:      req.UID,
		Email:    req.Email,
		Name:     req.DisplayName,
		Username: nameToUsername(req.DisplayName),
		PhotoURL: req.PhotoURL,
		APIKey:   strings.ReplaceAll(uuid.New().String()+uuid.New().String(), "-", ""),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func nameToUsername(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	base := b.String()
	if base == "" {
		base = "user"
	}

	// Random suffix keeps generated usernames unique without a
	// read-check-insert loop.
	return base + strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
}
