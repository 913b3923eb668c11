package service

import (
	"context"
)

// Event represents one platform event on the message bus. Inbound events
// (case submitted, user logged in) trigger notification creation; outbound
// events surface locally-scheduled notifications to the device session.
type Event struct {
	RequestID string            `json:"request_id,omitempty"` // For distributed tracing
	Type      string            `json:"type"`
	UserID    string            `json:"user_id"`
	CaseID    string            `json:"case_id,omitempty"`
	Title     string            `json:"title,omitempty"`
	Body      string            `json:"body,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEvent publishes an event for async processing
	PublishEvent(ctx context.Context, event *Event) error

	// Close releases any resources held by the publisher
	Close() error
}
