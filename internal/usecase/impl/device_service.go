package impl

import (
	"context"
	"log/slog"
	"time"

	"counsel/internal/domain/entity"
	"counsel/internal/domain/repository"
	"counsel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrMissingPushToken is returned when a registration carries no token.
	ErrMissingPushToken = errors.New("push token must be provided")
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
	logger     *slog.Logger
}

// NewDeviceService creates a new device registration service instance.
func NewDeviceService(deviceRepo repository.DeviceRepository, logger *slog.Logger) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
		logger:     logger,
	}
}

// RegisterDevice stores or refreshes the push token for a user's device.
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, info usecase.DeviceInfo) error {
	if info.PushToken == "" {
		return ErrMissingPushToken
	}

	now := time.Now()
	device := &entity.UserDevice{
		ID:         uuid.New(),
		UserID:     userID,
		PushToken:  info.PushToken,
		DeviceType: info.DeviceType,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.deviceRepo.UpsertDevice(ctx, device); err != nil {
		return errors.Wrap(err, "failed to register device")
	}

	s.logger.Info("Device registered",
		slog.String("user_id", userID.String()),
		slog.String("device_type", info.DeviceType),
	)

	return nil
}

// UnregisterDevice deactivates the push token for a user's device.
func (s *deviceService) UnregisterDevice(ctx context.Context, userID uuid.UUID, pushToken string) error {
	if pushToken == "" {
		return ErrMissingPushToken
	}

	if err := s.deviceRepo.DeactivateDevice(ctx, userID, pushToken); err != nil {
		return errors.Wrap(err, "failed to unregister device")
	}

	s.logger.Info("Device unregistered",
		slog.String("user_id", userID.String()),
	)

	return nil
}
