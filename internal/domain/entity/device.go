// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserDevice represents one registered push-capable device for a user.
// Inactive devices are excluded from delivery but never deleted.
type UserDevice struct {
	ID         uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the device.
	UserID     uuid.UUID `json:"user_id"`     // The ID of the user who owns this device.
	PushToken  string    `json:"push_token"`  // Gateway push token for this device.
	DeviceType string    `json:"device_type"` // Device platform (ios, android).
	IsActive   bool      `json:"is_active"`   // Indicates if this device is eligible for delivery.
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of when this device was registered.
	UpdatedAt  time.Time `json:"updated_at"`  // Timestamp of the last modification.
}
