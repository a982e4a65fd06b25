package handlers

import (
	"net/http"

	"github.com/devhasib/buzznet/backend/internal/realtime"
	"github.com/devhasib/buzznet/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	broadcaster            *realtime.Broadcaster
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, broadcaster *realtime.Broadcaster) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		broadcaster:            broadcaster,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the current user's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notificationRepository.GetByUserID(c.Request().Context(), currentUID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the unread notification count, recomputed on demand
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), currentUID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a single notification as read. Read-state belongs to the
// recipient; nobody else may flip it.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	uid := currentUID(c)

	ctx := c.Request().Context()
	notification, err := h.notificationRepository.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if notification.UserID != uid {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this notification")
	}

	if err := h.notificationRepository.MarkAsRead(ctx, notification.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.broadcaster.NotificationsChanged(ctx, notification.UserID)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks every unread notification for the current user as read.
// This fans out one update per row rather than a single bulk write.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	uid := currentUID(c)

	ctx := c.Request().Context()
	if err := h.notificationRepository.MarkAllAsRead(ctx, uid); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.broadcaster.NotificationsChanged(ctx, uid)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
