// Package localnotify surfaces fallback notifications to the active device
// session by publishing them on the event bus, where the session channel
// picks them up and presents them without any push gateway involved.
package localnotify

import (
	"context"
	"log/slog"

	"counsel/internal/domain/constants"
	"counsel/internal/domain/entity"
	"counsel/internal/domain/service"

	"go.uber.org/fx"
)

type eventNotifier struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

// Params holds dependencies for LocalNotifier, injected by Fx.
type Params struct {
	fx.In

	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// New creates a LocalNotifier backed by the event bus.
func New(params Params) service.LocalNotifier {
	return &eventNotifier{
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// Schedule publishes a local-delivery event for the notification. Failures
// are returned to the caller, who treats local delivery as best effort.
func (n *eventNotifier) Schedule(ctx context.Context, notification *entity.Notification) error {
	event := &service.Event{
		Type:   constants.EventLocalDelivery,
		UserID: notification.UserID.String(),
		Title:  notification.Title,
		Body:   notification.Body,
		Data:   notification.Data,
	}

	if err := n.publisher.PublishEvent(ctx, event); err != nil {
		return err
	}

	n.logger.Debug("[LocalNotify] Scheduled local delivery",
		slog.String("notification_id", notification.ID),
		slog.String("user_id", event.UserID),
	)

	return nil
}

// Module provides the local notifier FX module.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
