package app

import (
	"log"

	"github.com/mddanishyusuf/listyouridea/internal/config"
	"github.com/mddanishyusuf/listyouridea/internal/database"
	"github.com/mddanishyusuf/listyouridea/internal/payment"
	"github.com/mddanishyusuf/listyouridea/internal/repository"
	"github.com/mddanishyusuf/listyouridea/internal/service"
	"github.com/mddanishyusuf/listyouridea/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, storage.Storage) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey)

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, gateway)

	return db, repo, services, minioClient
}
