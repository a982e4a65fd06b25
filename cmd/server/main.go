package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/devhasib/buzznet/backend/internal/router"
	"github.com/devhasib/buzznet/backend/pkg/config"
	"github.com/devhasib/buzznet/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the document store connection
	db, err := config.InitDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase; without credentials the API runs with local JWT
	// sessions only
	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	} else {
		log.Println("No Firebase credentials configured, using local JWT sessions.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Mongo, authClient)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
