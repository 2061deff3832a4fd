package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/middleware"
	"github.com/talenthub/backend/internal/models"
	"github.com/talenthub/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers routes on the /notification group.
// All routes are hybrid: both account kinds receive notifications.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	hybrid := middleware.RequireAccount(models.KindSeeker, models.KindFinder)

	g.GET("/all", h.GetNotifications, hybrid)
	g.PUT("/read", h.MarkAsRead, hybrid)
	g.PUT("/read/all", h.MarkAllAsRead, hybrid)
}

// GetNotifications returns the account's notifications, newest first,
// with total and unread counts
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	accountID, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	notifications, err := h.notificationRepository.ListByRecipient(c.Request().Context(), claims.Kind, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications.")
	}

	unread, err := h.notificationRepository.CountUnread(c.Request().Context(), claims.Kind, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications.")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"count":         len(notifications),
		"unread":        unread,
		"notifications": notifications,
	})
}

// MarkAsRead marks one notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), req.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark as read.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Marked as read"})
}

// MarkAllAsRead marks every unread notification of the account as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	accountID, claims, err := accountIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), claims.Kind, accountID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark all as read.")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "All notifications marked as read."})
}
