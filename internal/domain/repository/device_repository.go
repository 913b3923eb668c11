// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"counsel/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
)

// DeviceRepository defines the interface for the device registry: it resolves
// a user to the set of devices eligible for push delivery.
type DeviceRepository interface {
	// UpsertDevice registers a device or refreshes the token of an existing
	// registration for the same user and device.
	UpsertDevice(ctx context.Context, device *entity.UserDevice) error

	// FindActiveDevicesByUser retrieves the push-eligible devices of a user.
	// Devices whose active flag is explicitly false are excluded; an absent
	// flag counts as active.
	FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// DeactivateDevice marks the device with the given token inactive.
	DeactivateDevice(ctx context.Context, userID uuid.UUID, pushToken string) error
}
