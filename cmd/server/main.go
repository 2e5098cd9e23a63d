package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/abenov/lingopal/internal/chat"
	"github.com/abenov/lingopal/internal/config"
	"github.com/abenov/lingopal/internal/database"
	"github.com/abenov/lingopal/internal/handlers"
	"github.com/abenov/lingopal/internal/repository"
	"github.com/abenov/lingopal/internal/services"
	"github.com/abenov/lingopal/pkg/logger"
	"github.com/abenov/lingopal/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Chat directory (Stream)
	directory, err := chat.NewStreamDirectory(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		log.Fatalf("Chat directory error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, directory)
	friendService := services.NewFriendService(requestRepo, userRepo)
	chatService := services.NewChatService(directory)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(friendService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Auth routes; onboarding and me require a session
	authRoutes := router.PathPrefix("/api/auth").Subrouter()
	authRoutes.HandleFunc("/signup", authHandler.SignupHandler).Methods("POST")
	authRoutes.HandleFunc("/login", authHandler.LoginHandler).Methods("POST")
	authRoutes.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")

	protectedAuthRoutes := router.PathPrefix("/api/auth").Subrouter()
	protectedAuthRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedAuthRoutes.HandleFunc("/onboarding", authHandler.OnboardingHandler).Methods("POST")
	protectedAuthRoutes.HandleFunc("/me", authHandler.MeHandler).Methods("GET")

	// User routes: recommendations, friends, friend requests
	userRoutes := router.PathPrefix("/api/users").Subrouter()
	userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	userRoutes.HandleFunc("", userHandler.GetRecommendedUsersHandler).Methods("GET")
	userRoutes.HandleFunc("/friends", userHandler.GetFriendsHandler).Methods("GET")
	userRoutes.HandleFunc("/friend-requests", userHandler.GetFriendRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/outgoing-friend-requests", userHandler.GetOutgoingFriendRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/friend-request/{id}", userHandler.SendFriendRequestHandler).Methods("POST")
	userRoutes.HandleFunc("/friend-request/{id}/accept", userHandler.AcceptFriendRequestHandler).Methods("PUT")

	// Chat routes
	chatRoutes := router.PathPrefix("/api/chat").Subrouter()
	chatRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	chatRoutes.HandleFunc("/token", chatHandler.GetTokenHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
