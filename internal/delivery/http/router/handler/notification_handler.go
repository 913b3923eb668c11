package handler

import (
	"log/slog"
	"net/http"

	"counsel/internal/delivery/http/response"
	domainerrors "counsel/internal/domain/errors"
	"counsel/internal/domain/repository"
	"counsel/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for notification-related handlers
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateNotificationRequest represents the request body for triggering a
// delivery. The target defaults to the authenticated user.
type CreateNotificationRequest struct {
	UserID   *uuid.UUID        `json:"user_id,omitempty"`
	Title    string            `json:"title" validate:"required"`
	Body     string            `json:"body" validate:"required"`
	Type     string            `json:"type,omitempty"`
	Category string            `json:"category,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
}

// CreateNotification triggers the delivery chain for a notification
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	target := userID
	if req.UserID != nil {
		target = *req.UserID
	}

	result := h.uc.CreateNotification(c.Request().Context(), usecase.CreateNotificationParams{
		UserID:   target,
		Title:    req.Title,
		Body:     req.Body,
		Type:     req.Type,
		Category: req.Category,
		Data:     req.Data,
	})

	return response.Success(c, http.StatusCreated, result, "Notification delivered")
}

// GetNotifications returns the merged notification feed of the user
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	notifications, err := h.uc.GetUserNotifications(c.Request().Context(), userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	count, err := h.uc.GetUnreadCount(c.Request().Context(), userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"unread_count": count}, "Unread count retrieved successfully")
}

// MarkAsRead marks one notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "VALIDATION_ERROR", "Notification id is required")
	}

	if err := h.uc.MarkAsRead(c.Request().Context(), id, userID); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// MarkAllAsRead marks every notification of the user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAllAsRead(c.Request().Context(), userID); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "All notifications marked as read")
}

// DeleteNotification removes a notification
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "VALIDATION_ERROR", "Notification id is required")
	}

	if err := h.uc.DeleteNotification(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return response.NotFound(c, "NOTIFICATION_NOT_FOUND", "Notification not found")
		}

		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification deleted")
}

// getUserID extracts the authenticated user ID from the context
func (h *NotificationHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// handleAppError handles application errors
func (h *NotificationHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
