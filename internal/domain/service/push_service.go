package service

import (
	"context"
)

// PushMessage is one push payload addressed to a single device token.
type PushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Badge int               `json:"badge,omitempty"`
}

// PushService delivers one message to one device token through a push
// gateway. A nil error means the gateway explicitly acknowledged the
// message; any other gateway status or transport failure is an error
// carrying the raw response for diagnostics. No retry is performed.
type PushService interface {
	Send(ctx context.Context, msg *PushMessage) error
}
