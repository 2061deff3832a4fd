package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/middleware"
	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/repositories"
	"github.com/talenthub/backend/internal/workflow"
	"github.com/talenthub/backend/pkg/firebase"
	"golang.org/x/crypto/bcrypt"
)

// SeekerHandler handles talent-seeker HTTP requests
type SeekerHandler struct {
	seekerRepository      repositories.SeekerRepository
	finderRepository      repositories.FinderRepository
	jobRepository         repositories.JobRepository
	applicationRepository repositories.ApplicationRepository
	engine                *workflow.Engine
	uploader              firebase.Uploader
	jwtSecret             string
}

// NewSeekerHandler creates a new SeekerHandler
func NewSeekerHandler(
	seekerRepo repositories.SeekerRepository,
	finderRepo repositories.FinderRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	engine *workflow.Engine,
	uploader firebase.Uploader,
	jwtSecret string,
) *SeekerHandler {
	return &SeekerHandler{
		seekerRepository:      seekerRepo,
		finderRepository:      finderRepo,
		jobRepository:         jobRepo,
		applicationRepository: applicationRepo,
		engine:                engine,
		uploader:              uploader,
		jwtSecret:             jwtSecret,
	}
}

// RegisterSeekerRoutes registers seeker routes on the /user group
func (h *SeekerHandler) RegisterSeekerRoutes(g *echo.Group) {
	seekerOnly := middleware.RequireAccount(models.KindSeeker)

	g.POST("/register-user", h.Register)
	g.POST("/login-user", h.Login)
	g.GET("/all-users", h.AllUsers)
	g.GET("/user-data", h.UserData, seekerOnly)
	g.POST("/apply-job", h.ApplyJob, seekerOnly)
	g.GET("/user-applications", h.UserApplications, seekerOnly)
	g.POST("/upload-resume", h.UploadResume, seekerOnly)
}

// Register handles seeker registration with profile image upload
func (h *SeekerHandler) Register(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	imageFile, fileErr := c.FormFile("image")

	if name == "" || email == "" || password == "" || fileErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required (name, email, password, image)")
	}

	_, err := h.seekerRepository.GetSeekerByEmail(c.Request().Context(), email)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
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

	seeker := &models.Seeker{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Image:    imageURL,
		Skills:   splitSkills(c.FormValue("skills")),
		Bio:      c.FormValue("bio"),
	}

	if err := h.seekerRepository.CreateSeeker(c.Request().Context(), seeker); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	token, err := generateToken(seeker.ID.Hex(), models.KindSeeker, seeker.Email, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Registration successful",
		"userData": seeker,
		"token":    token,
	})
}

// Login handles seeker authentication with email and password
func (h *SeekerHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	seeker, err := h.seekerRepository.GetSeekerByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(seeker.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := generateToken(seeker.ID.Hex(), models.KindSeeker, seeker.Email, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Login successful",
		"userData": seeker,
		"token":    token,
	})
}

// UserData returns the authenticated seeker's profile
func (h *SeekerHandler) UserData(c echo.Context) error {
	_, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	seeker, err := h.seekerRepository.GetSeekerByID(c.Request().Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch user data")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "userData": seeker})
}

// ApplyJob submits an application for the authenticated seeker
func (h *SeekerHandler) ApplyJob(c echo.Context) error {
	_, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.ApplyJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	seeker, err := h.seekerRepository.GetSeekerByID(c.Request().Context(), claims.AccountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
	}

	application, err := h.engine.Apply(c.Request().Context(), seeker, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrJobNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		case errors.Is(err, workflow.ErrJobClosed):
			return echo.NewHTTPError(http.StatusBadRequest, "Job is no longer accepting applications")
		case errors.Is(err, workflow.ErrAlreadyApplied):
			return echo.NewHTTPError(http.StatusConflict, "Already applied to this job")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Application failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success":     true,
		"message":     "Job applied successfully",
		"application": application,
	})
}

// EnrichedApplication includes job and finder compacts for candidate views
type EnrichedApplication struct {
	models.Application
	Job    models.JobCompact    `json:"job"`
	Finder models.FinderCompact `json:"finder"`
}

// UserApplications lists the authenticated seeker's applications
func (h *SeekerHandler) UserApplications(c echo.Context) error {
	accountID, _, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	applications, err := h.applicationRepository.ListBySeeker(c.Request().Context(), accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch applications")
	}

	enriched := make([]EnrichedApplication, len(applications))
	jobCache := make(map[string]models.JobCompact)
	finderCache := make(map[string]models.FinderCompact)

	for i, a := range applications {
		enriched[i] = EnrichedApplication{Application: a}

		if job, ok := jobCache[a.JobID.Hex()]; ok {
			enriched[i].Job = job
		} else if j, err := h.jobRepository.GetJobByID(c.Request().Context(), a.JobID.Hex()); err == nil {
			compact := j.ToCompact()
			jobCache[a.JobID.Hex()] = compact
			enriched[i].Job = compact
		}

		if finder, ok := finderCache[a.FinderID.Hex()]; ok {
			enriched[i].Finder = finder
		} else if f, err := h.finderRepository.GetFinderByID(c.Request().Context(), a.FinderID.Hex()); err == nil {
			compact := f.ToCompact()
			finderCache[a.FinderID.Hex()] = compact
			enriched[i].Finder = compact
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"count":        len(enriched),
		"applications": enriched,
	})
}

// UploadResume stores the seeker's resume file and saves its URL
func (h *SeekerHandler) UploadResume(c echo.Context) error {
	_, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Resume file required")
	}

	src, err := resumeFile.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read resume file")
	}
	defer src.Close()

	resumeURL, err := h.uploader.Upload(c.Request().Context(), resumeFile.Filename, resumeFile.Header.Get("Content-Type"), src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	if err := h.seekerRepository.UpdateResume(c.Request().Context(), claims.AccountID, resumeURL); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Resume uploaded",
		"resumeUrl": resumeURL,
	})
}

// AllUsers lists every seeker account, passwords excluded
func (h *SeekerHandler) AllUsers(c echo.Context) error {
	seekers, err := h.seekerRepository.ListAllSeekers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"total":   len(seekers),
		"users":   seekers,
	})
}

// splitSkills parses a comma-separated skill list, dropping empty entries
func splitSkills(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
