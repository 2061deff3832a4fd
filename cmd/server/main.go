package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/cache"
	"github.com/talenthub/backend/internal/router"
	"github.com/talenthub/backend/pkg/config"
	"github.com/talenthub/backend/pkg/firebase"
	"github.com/talenthub/backend/pkg/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Initialize Firebase storage for image and resume uploads
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	uploader := firebase.NewStorageUploader(firebaseApp)

	// Redis cache for the public job listing
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Mongo, cfg, uploader, cacheClient)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
