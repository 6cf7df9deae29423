package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/models"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
	"github.com/mddanishyusuf/listyouridea/internal/service"
	"github.com/mddanishyusuf/listyouridea/internal/storage"
)

type Handlers struct {
	UserService     service.UserService
	PostService     service.PostService
	ScheduleService service.ScheduleService
	BookingService  service.BookingService
	UserRepo        repository.UserRepository
	Storage         storage.Storage
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, store storage.Storage, cfg *config.Config) *Handlers {
	return &Handlers{
		UserService:     services.User,
		PostService:     services.Post,
		ScheduleService: services.Schedule,
		BookingService:  services.Booking,
		UserRepo:        repo.User,
		Storage:         store,
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}

// currentUser resolves the authenticated uid from the request context to an
// internal account.
func (h *Handlers) currentUser(r *http.Request) (*models.User, error) {
	uid, ok := r.Context().Value("uid").(string)
	if !ok || uid == "" {
		return nil, models.ErrUnauthorized
	}

	user, err := h.UserRepo.GetByUID(r.Context(), uid)
	if err != nil {
		return nil, fmt.Errorf("unknown account: %w", models.ErrUnauthorized)
	}

	return user, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "ok"}, http.StatusOK)
}
