// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"counsel/internal/domain/entity"

	"github.com/google/uuid"
)

// LocalNotificationStore is the durable per-user fallback feed: an
// append-only, capped list of notification records kept in key-value
// storage, used both as a write-behind mirror and as the offline feed.
type LocalNotificationStore interface {
	// Append prepends the record to the user's list and truncates the list
	// to the store's cap, dropping the oldest entries.
	Append(ctx context.Context, userID uuid.UUID, record *entity.Notification) error

	// GetAll returns the user's stored records, newest first. An absent key
	// or an undecodable blob yields an empty list, not an error.
	GetAll(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// ReplaceAll overwrites the user's stored list with exactly the given
	// records.
	ReplaceAll(ctx context.Context, userID uuid.UUID, records []*entity.Notification) error
}
