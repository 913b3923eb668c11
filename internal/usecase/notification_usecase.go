package usecase

import (
	"context"

	"counsel/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateNotificationParams carries the content of a notification to deliver.
type CreateNotificationParams struct {
	UserID   uuid.UUID         `json:"user_id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Type     string            `json:"type"`
	Category string            `json:"category"`
	Data     map[string]string `json:"data,omitempty"`
}

// DeliveryResult reports which delivery channels succeeded for one
// notification. Success means the user can see the notification somewhere;
// Fallback marks deliveries that only reached the on-device store.
type DeliveryResult struct {
	Notification *entity.Notification `json:"notification"`
	Database     bool                 `json:"database"`
	Push         bool                 `json:"push"`
	Local        bool                 `json:"local"`
	Fallback     bool                 `json:"fallback"`
	Success      bool                 `json:"success"`
}

// NotificationUsecase defines the interface for notification delivery and
// history management use cases
type NotificationUsecase interface {
	// CreateNotification runs the delivery chain (database, push, local
	// mirror) and always returns a result, never an error
	CreateNotification(ctx context.Context, params CreateNotificationParams) *DeliveryResult

	// GetUserNotifications returns the merged remote and local history,
	// newest first
	GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// GetUnreadCount returns the number of merged records not yet read
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkAsRead marks one notification as read across both stores
	MarkAsRead(ctx context.Context, id string, userID uuid.UUID) error

	// MarkAllAsRead marks every notification of the user as read
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	// DeleteNotification removes a notification from the remote store
	DeleteNotification(ctx context.Context, id string, userID uuid.UUID) error
}
