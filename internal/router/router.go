package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/talenthub/backend/internal/cache"
	"github.com/talenthub/backend/internal/handlers"
	"github.com/talenthub/backend/internal/repositories"
	"github.com/talenthub/backend/internal/workflow"
	"github.com/talenthub/backend/pkg/config"
	"github.com/talenthub/backend/pkg/firebase"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, cfg *config.Config, uploader firebase.Uploader, cacheClient *cache.Client) {
	db := mgClient.Database(cfg.MongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "API is working fine"})
	})

	// --- Initialize Repositories ---
	seekerRepo := repositories.NewMongoSeekerRepository(db)
	finderRepo := repositories.NewMongoFinderRepository(db)
	jobRepo := repositories.NewMongoJobRepository(db)
	applicationRepo := repositories.NewMongoApplicationRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)
	txnRunner := repositories.NewMongoTxnRunner(mgClient)

	// --- Workflow engine ---
	engine := workflow.NewEngine(jobRepo, applicationRepo, notificationRepo, txnRunner)

	// Seeker routes
	seekerHandler := handlers.NewSeekerHandler(seekerRepo, finderRepo, jobRepo, applicationRepo, engine, uploader, cfg.JWTSecret)
	seekerHandler.RegisterSeekerRoutes(e.Group("/user"))
	log.Println("Seeker routes configured.")

	// Finder routes
	finderHandler := handlers.NewFinderHandler(finderRepo, seekerRepo, jobRepo, applicationRepo, engine, uploader, cacheClient, cfg.JWTSecret)
	finderHandler.RegisterFinderRoutes(e.Group("/company"))
	log.Println("Finder routes configured.")

	// Public job listing
	jobHandler := handlers.NewJobHandler(jobRepo, finderRepo, cacheClient)
	jobHandler.RegisterJobRoutes(e.Group("/job"))
	log.Println("Job routes configured.")

	// Recommendation routes
	recommendationHandler := handlers.NewRecommendationHandler(seekerRepo, jobRepo, applicationRepo)
	recommendationHandler.RegisterRecommendationRoutes(e.Group("/recommendation"))
	log.Println("Recommendation routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(e.Group("/notification"))
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
