// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"counsel/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for notification persistence.
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationRepository defines the interface for the remote notification
// store: a hosted table of notification rows keyed by user and ID.
type NotificationRepository interface {
	// CreateNotification persists a new notification row and fills in the
	// server-assigned ID and timestamps on the entity.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// FindNotificationsByUser retrieves up to limit most-recent notifications
	// for a user, newest first.
	FindNotificationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error)

	// MarkAsRead sets read=true on a single notification owned by the user.
	MarkAsRead(ctx context.Context, id string, userID uuid.UUID) error

	// MarkAllAsRead sets read=true on every unread notification of the user.
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	// DeleteNotification removes a notification owned by the user.
	DeleteNotification(ctx context.Context, id string, userID uuid.UUID) error
}
