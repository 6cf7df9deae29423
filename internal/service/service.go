package service

import (
	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/payment"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
	"github.com/mddanishyusuf/listyouridea/internal/storage"
)

type Service struct {
	User     UserService
	Post     PostService
	Schedule ScheduleService
	Booking  BookingService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, gateway payment.Gateway) *Service {
	scheduleService := NewScheduleService(rep.Schedule, rep.Post, cfg, NeverExpire())

	return &Service{
		User:     NewUserService(rep.User),
		Post:     NewPostService(rep.Post, rep.Image, storage, cfg),
		Schedule: scheduleService,
		Booking:  NewBookingService(scheduleService, rep.Schedule, rep.Post, gateway, cfg),
	}
}
