package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/devhasib/buzznet/backend/internal/handlers"
	"github.com/devhasib/buzznet/backend/internal/middleware"
	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/devhasib/buzznet/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil, in which case the API falls back to HMAC JWT
// sessions minted at signup.
func SetupRoutes(e *echo.Echo, cfg *config.Config, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	db := mgClient.Database(cfg.MongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	friendshipRepo := repositories.NewMongoFriendshipRepository(db)
	reactionRepo := repositories.NewMongoReactionRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)

	// --- Realtime snapshot broadcasting ---
	hub := realtime.NewHub()
	broadcaster := realtime.NewBroadcaster(hub, postRepo, notificationRepo)
	log.Println("Realtime hub configured.")

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1")
	if firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
		log.Println("Firebase authentication middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		log.Println("JWT authentication middleware applied to /api/v1 group.")
	}

	// User directory routes
	userHandler := handlers.NewUserHandler(userRepo, postRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User directory routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, notificationRepo, broadcaster)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notificationRepo, broadcaster)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo, notificationRepo, broadcaster)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	// Reaction routes
	reactionHandler := handlers.NewReactionHandler(reactionRepo)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, broadcaster)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Live feed routes
	feedHandler := handlers.NewFeedHandler(broadcaster)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Live feed routes configured.")

	log.Println("All routes configured.")
}
