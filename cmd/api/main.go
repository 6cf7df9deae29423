package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mddanishyusuf/listyouridea/cmd/app"
	"github.com/mddanishyusuf/listyouridea/internal/config"
	handlers "github.com/mddanishyusuf/listyouridea/internal/handler"
	"github.com/mddanishyusuf/listyouridea/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Stripe.SecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set")
	}
	if cfg.AuthSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is not set")
	}

	db, repo, services, store := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, store, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/api/schedule/weeks", handler.GetWeeks).Methods(http.MethodGet)
	router.HandleFunc("/api/schedule/book", handler.BookSlot).Methods(http.MethodPost)
	router.HandleFunc("/api/schedule/verify-payment", handler.VerifyPayment).Methods(http.MethodPost)
	router.HandleFunc("/api/schedule/cancel-payment", handler.CancelPayment).Methods(http.MethodPost)
	router.HandleFunc("/api/schedule/debug", handler.DebugSchedules).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.GetMyPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/public", handler.GetPublicFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}/like", handler.LikePost).Methods(http.MethodPost)

	router.HandleFunc("/api/user/profile", handler.Profile).Methods(http.MethodPost)
	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	router.HandleFunc("/api/upload", handler.Upload).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.IdentityMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
