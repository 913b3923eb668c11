// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalIDPrefix marks notification IDs generated on the client side for
// records that only exist in the local store.
const LocalIDPrefix = "local_"

// Notification represents one user-facing notification. Remote records carry
// a server-assigned UUID; records that only ever lived in the local store
// carry a client-generated "local_<timestamp>_<random>" ID instead.
type Notification struct {
	ID          string            `json:"id"`                // Server-assigned UUID, or client-generated local ID.
	UserID      uuid.UUID         `json:"user_id"`           // The ID of the user this notification belongs to.
	Title       string            `json:"title"`             // Short headline shown to the user.
	Body        string            `json:"body"`              // Full notification text.
	Type        string            `json:"type"`              // Free-form category tag (info, security, case).
	Category    string            `json:"category"`          // Free-form sub-tag within the type.
	Read        bool              `json:"read"`              // Whether the user has read this notification.
	IsRead      bool              `json:"isRead,omitempty"`  // Legacy alias for Read, still present in old local blobs.
	Data        map[string]string `json:"data,omitempty"`    // Opaque payload carrying navigation hints (screen, action).
	CreatedAt   time.Time         `json:"created_at"`        // Timestamp of when this record was created.
	UpdatedAt   time.Time         `json:"updated_at"`        // Timestamp of the last modification.
	IsLocalOnly bool              `json:"is_local_only"`     // True if the record originated from the local store.
}

// Unread reports whether the notification has not been read yet, honoring
// both the current and the legacy read flag.
func (n *Notification) Unread() bool {
	return !n.Read && !n.IsRead
}

// HasLocalID reports whether the notification carries a client-generated
// local store ID rather than a server-assigned one.
func (n *Notification) HasLocalID() bool {
	return strings.HasPrefix(n.ID, LocalIDPrefix)
}
