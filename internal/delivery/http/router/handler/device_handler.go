package handler

import (
	"log/slog"
	"net/http"

	"counsel/internal/delivery/http/response"
	domainerrors "counsel/internal/domain/errors"
	"counsel/internal/domain/repository"
	"counsel/internal/usecase"
	"counsel/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DeviceHandler holds dependencies for push token registration handlers
type DeviceHandler struct {
	uc     usecase.DeviceUsecase
	logger *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(uc usecase.DeviceUsecase, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterDeviceRequest represents the request body for registering a device
type RegisterDeviceRequest struct {
	PushToken  string `json:"push_token" validate:"required"`
	DeviceType string `json:"device_type,omitempty"`
}

// UnregisterDeviceRequest represents the request body for unregistering a device
type UnregisterDeviceRequest struct {
	PushToken string `json:"push_token" validate:"required"`
}

// RegisterDevice stores or refreshes the push token of the caller's device
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err = h.uc.RegisterDevice(c.Request().Context(), userID, usecase.DeviceInfo{
		PushToken:  req.PushToken,
		DeviceType: req.DeviceType,
	})
	if err != nil {
		if errors.Is(err, impl.ErrMissingPushToken) {
			return response.BadRequest(c, "VALIDATION_ERROR", "push_token is required")
		}

		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, nil, "Device registered")
}

// UnregisterDevice deactivates the push token of the caller's device
func (h *DeviceHandler) UnregisterDevice(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req UnregisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.uc.UnregisterDevice(c.Request().Context(), userID, req.PushToken); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return response.NotFound(c, "DEVICE_NOT_FOUND", "Device not found")
		}

		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Device unregistered")
}

// getUserID extracts the authenticated user ID from the context
func (h *DeviceHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// handleAppError handles application errors
func (h *DeviceHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
