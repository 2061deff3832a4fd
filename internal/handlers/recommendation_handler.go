package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/middleware"
	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/recommend"
	"github.com/talenthub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationHandler handles job recommendation HTTP requests
type RecommendationHandler struct {
	seekerRepository      repositories.SeekerRepository
	jobRepository         repositories.JobRepository
	applicationRepository repositories.ApplicationRepository
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(
	seekerRepo repositories.SeekerRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
) *RecommendationHandler {
	return &RecommendationHandler{
		seekerRepository:      seekerRepo,
		jobRepository:         jobRepo,
		applicationRepository: applicationRepo,
	}
}

// RegisterRecommendationRoutes registers routes on the /recommendation group
func (h *RecommendationHandler) RegisterRecommendationRoutes(g *echo.Group) {
	hybrid := middleware.RequireAccount(models.KindSeeker, models.KindFinder)
	g.GET("/recommendations", h.GetRecommendations, hybrid)
}

// GetRecommendations returns the top matches among visible jobs the
// account has not applied to. Accounts without a skill list (including
// finder tokens on this hybrid route) get the most recent jobs instead.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	accountID, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	var skills []string
	var excluded []primitive.ObjectID

	if claims.Kind == models.KindSeeker {
		seeker, err := h.seekerRepository.GetSeekerByID(c.Request().Context(), claims.AccountID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
		}
		skills = seeker.Skills

		excluded, err = h.applicationRepository.ListJobIDsBySeeker(c.Request().Context(), accountID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch recommendations")
		}
	}

	jobs, err := h.jobRepository.ListVisibleJobsExcluding(c.Request().Context(), excluded)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch recommendations")
	}

	recommendations := recommend.Recommend(skills, jobs)

	message := "Recommended jobs fetched successfully"
	if len(skills) == 0 {
		message = "No skills found, showing latest jobs"
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":         true,
		"message":         message,
		"recommendations": recommendations,
	})
}
