package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/middleware"
	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/repositories"
	"github.com/talenthub/backend/internal/workflow"
	"github.com/talenthub/backend/pkg/firebase"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// FinderHandler handles talent-finder (company) HTTP requests
type FinderHandler struct {
	finderRepository      repositories.FinderRepository
	seekerRepository      repositories.SeekerRepository
	jobRepository         repositories.JobRepository
	applicationRepository repositories.ApplicationRepository
	engine                *workflow.Engine
	uploader              firebase.Uploader
	listingCache          ListingCache
	jwtSecret             string
}

// NewFinderHandler creates a new FinderHandler
func NewFinderHandler(
	finderRepo repositories.FinderRepository,
	seekerRepo repositories.SeekerRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	engine *workflow.Engine,
	uploader firebase.Uploader,
	listingCache ListingCache,
	jwtSecret string,
) *FinderHandler {
	return &FinderHandler{
		finderRepository:      finderRepo,
		seekerRepository:      seekerRepo,
		jobRepository:         jobRepo,
		applicationRepository: applicationRepo,
		engine:                engine,
		uploader:              uploader,
		listingCache:          listingCache,
		jwtSecret:             jwtSecret,
	}
}

// RegisterFinderRoutes registers finder routes on the /company group
func (h *FinderHandler) RegisterFinderRoutes(g *echo.Group) {
	finderOnly := middleware.RequireAccount(models.KindFinder)

	g.POST("/register-company", h.Register)
	g.POST("/login-company", h.Login)
	g.GET("/company-data", h.CompanyData, finderOnly)
	g.POST("/post-job", h.PostJob, finderOnly)
	g.GET("/company-jobs", h.CompanyJobs, finderOnly)
	g.GET("/view-applicants", h.ViewApplicants, finderOnly)
	g.GET("/shortlist-applicants", h.ShortlistApplicants, finderOnly)
	g.POST("/change-status", h.ChangeStatus, finderOnly)
	g.PUT("/close-job/:jobId", h.CloseJob, finderOnly)
}

// Register handles company registration with logo upload
func (h *FinderHandler) Register(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	imageFile, fileErr := c.FormFile("image")

	if name == "" || email == "" || password == "" || fileErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required (name, email, password, image)")
	}

	_, err := h.finderRepository.GetFinderByEmail(c.Request().Context(), email)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Company with this email already registered")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	src, err := imageFile.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read image file")
	}
	defer src.Close()

	imageURL, err := h.uploader.Upload(c.Request().Context(), imageFile.Filename, imageFile.Header.Get("Content-Type"), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload image")
	}

	finder := &models.Finder{
		Name:        name,
		Email:       email,
		Password:    string(hashedPassword),
		Image:       imageURL,
		Description: c.FormValue("description"),
		Website:     c.FormValue("website"),
		Location:    c.FormValue("location"),
	}

	if err := h.finderRepository.CreateFinder(c.Request().Context(), finder); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	token, err := generateToken(finder.ID.Hex(), models.KindFinder, finder.Email, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"company": finder,
		"token":   token,
	})
}

// Login handles company authentication with email and password
func (h *FinderHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	finder, err := h.finderRepository.GetFinderByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(finder.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := generateToken(finder.ID.Hex(), models.KindFinder, finder.Email, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"company": finder,
		"token":   token,
	})
}

// CompanyData returns the authenticated company's profile
func (h *FinderHandler) CompanyData(c echo.Context) error {
	_, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	finder, err := h.finderRepository.GetFinderByID(c.Request().Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Company profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch company data")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "companyData": finder})
}

// PostJob creates a new job posting owned by the authenticated company
func (h *FinderHandler) PostJob(c echo.Context) error {
	accountID, _, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.PostJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Level:       req.Level,
		Salary:      req.Salary,
		Category:    req.Category,
		FinderID:    accountID,
	}

	if err := h.jobRepository.CreateJob(c.Request().Context(), job); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Job posting failed. Please try again.")
	}

	// drop cached listings so the new job shows up immediately
	h.listingCache.DeletePattern(c.Request().Context(), listingCachePattern)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Job posted successfully!",
		"job":     job,
	})
}

// CompanyJobs lists the company's jobs with applicant counts
func (h *FinderHandler) CompanyJobs(c echo.Context) error {
	accountID, _, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	jobs, err := h.jobRepository.ListJobsByFinder(c.Request().Context(), accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch company jobs")
	}

	type jobSummary struct {
		ID         primitive.ObjectID `json:"id"`
		Title      string             `json:"title"`
		Location   string             `json:"location"`
		Applicants int                `json:"applicants"`
	}

	summaries := make([]jobSummary, len(jobs))
	for i, j := range jobs {
		summaries[i] = jobSummary{ID: j.ID, Title: j.Title, Location: j.Location, Applicants: j.ApplicantsCount}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "jobs": summaries})
}

// ApplicantView includes seeker and job compacts for recruiter views
type ApplicantView struct {
	models.Application
	Seeker models.SeekerCompact `json:"seeker"`
	Job    models.JobCompact    `json:"job"`
}

func (h *FinderHandler) listApplicants(c echo.Context, statuses []string) error {
	accountID, _, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	applications, err := h.applicationRepository.ListByFinderAndStatuses(c.Request().Context(), accountID, statuses)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch applicants")
	}

	applicants := make([]ApplicantView, len(applications))
	seekerCache := make(map[string]models.SeekerCompact)
	jobCache := make(map[string]models.JobCompact)

	for i, a := range applications {
		applicants[i] = ApplicantView{Application: a}

		if seeker, ok := seekerCache[a.SeekerID.Hex()]; ok {
			applicants[i].Seeker = seeker
		} else if s, err := h.seekerRepository.GetSeekerByID(c.Request().Context(), a.SeekerID.Hex()); err == nil {
			compact := s.ToCompact()
			seekerCache[a.SeekerID.Hex()] = compact
			applicants[i].Seeker = compact
		}

		if job, ok := jobCache[a.JobID.Hex()]; ok {
			applicants[i].Job = job
		} else if j, err := h.jobRepository.GetJobByID(c.Request().Context(), a.JobID.Hex()); err == nil {
			compact := j.ToCompact()
			compact.Salary = 0 // recruiter applicant views omit salary
			jobCache[a.JobID.Hex()] = compact
			applicants[i].Job = compact
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "applicants": applicants})
}

// ViewApplicants lists the company's Pending applicants
func (h *FinderHandler) ViewApplicants(c echo.Context) error {
	return h.listApplicants(c, []string{string(workflow.StatusPending)})
}

// ShortlistApplicants lists the company's Shortlisted or Accepted applicants
func (h *FinderHandler) ShortlistApplicants(c echo.Context) error {
	return h.listApplicants(c, []string{string(workflow.StatusShortlisted), string(workflow.StatusAccepted)})
}

// ChangeStatus updates one application's status and notifies its seeker
func (h *FinderHandler) ChangeStatus(c echo.Context) error {
	var req models.ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.engine.ChangeStatus(c.Request().Context(), req.ID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status value.")
		case errors.Is(err, workflow.ErrApplicationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Job application not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to change applicant status.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Status updated to '%s' and notification sent.", updated.Status),
		"updated": updated,
	})
}

// CloseJob closes a job, forces its applications to Close and notifies applicants
func (h *FinderHandler) CloseJob(c echo.Context) error {
	jobID := c.Param("jobId")
	if jobID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Job ID is required.")
	}

	closed, err := h.engine.CloseJob(c.Request().Context(), jobID)
	if err != nil {
		if errors.Is(err, workflow.ErrJobNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to close job and notify applicants.")
	}

	// drop cached listings so the closed job stops appearing before the TTL
	h.listingCache.DeletePattern(c.Request().Context(), listingCachePattern)

	message := "Job closed. No applicants to notify."
	if closed > 0 {
		message = fmt.Sprintf("Job and %d application(s) closed successfully.", closed)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": message})
}
