package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/repositories"
)

const (
	listingCacheTTL     = 30 * time.Second
	listingCachePrefix  = "jobs:list:"
	listingCachePattern = listingCachePrefix + "*"
)

// ListingCache is the slice of the redis client the job listing uses.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// JobHandler handles public job-listing HTTP requests
type JobHandler struct {
	jobRepository    repositories.JobRepository
	finderRepository repositories.FinderRepository
	cache            ListingCache
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobRepo repositories.JobRepository, finderRepo repositories.FinderRepository, cacheClient ListingCache) *JobHandler {
	return &JobHandler{jobRepository: jobRepo, finderRepository: finderRepo, cache: cacheClient}
}

// RegisterJobRoutes registers the public listing route on the /job group
func (h *JobHandler) RegisterJobRoutes(g *echo.Group) {
	g.GET("", h.ListJobs)
}

// ListingCacheKey builds the redis key for a (search, category) listing query.
// Both parts are query-escaped so values containing the separator cannot
// collide with a different query.
func ListingCacheKey(search, category string) string {
	return fmt.Sprintf("%s%s:%s", listingCachePrefix, url.QueryEscape(search), url.QueryEscape(category))
}

// ListedJob is a visible job with its owning company compact embedded
type ListedJob struct {
	models.Job
	Company models.FinderCompact `json:"company"`
}

// ListJobs returns visible jobs, filtered by title substring and category.
// Results are served from redis when a fresh cached listing exists.
func (h *JobHandler) ListJobs(c echo.Context) error {
	search := c.QueryParam("search")
	category := c.QueryParam("category")

	key := ListingCacheKey(search, category)
	if cached, _ := h.cache.Get(c.Request().Context(), key); cached != nil {
		return c.JSONBlob(http.StatusOK, cached)
	}

	jobs, err := h.jobRepository.ListVisibleJobs(c.Request().Context(), search, category)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch jobs")
	}

	listed := make([]ListedJob, len(jobs))
	finderCache := make(map[string]models.FinderCompact)
	for i, j := range jobs {
		listed[i] = ListedJob{Job: j}
		if finder, ok := finderCache[j.FinderID.Hex()]; ok {
			listed[i].Company = finder
		} else if f, err := h.finderRepository.GetFinderByID(c.Request().Context(), j.FinderID.Hex()); err == nil {
			compact := f.ToCompact()
			finderCache[j.FinderID.Hex()] = compact
			listed[i].Company = compact
		}
	}

	payload, err := json.Marshal(echo.Map{
		"success": true,
		"count":   len(listed),
		"jobs":    listed,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch jobs")
	}

	h.cache.Set(c.Request().Context(), key, payload, listingCacheTTL)
	return c.JSONBlob(http.StatusOK, payload)
}
