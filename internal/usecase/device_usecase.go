package usecase

import (
	"context"

	"github.com/google/uuid"
)

// DeviceInfo carries the registration payload sent by the app after it
// obtains a push token.
type DeviceInfo struct {
	PushToken  string `json:"push_token"`
	DeviceType string `json:"device_type"`
}

// DeviceUsecase defines the interface for push token registration use cases
type DeviceUsecase interface {
	// RegisterDevice stores or refreshes the push token for a user's device
	RegisterDevice(ctx context.Context, userID uuid.UUID, info DeviceInfo) error

	// UnregisterDevice deactivates the push token so the user stops
	// receiving pushes on that device
	UnregisterDevice(ctx context.Context, userID uuid.UUID, pushToken string) error
}
