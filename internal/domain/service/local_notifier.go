package service

import (
	"context"

	"counsel/internal/domain/entity"
)

// LocalNotifier schedules a notification for on-device presentation when
// gateway delivery is impossible: the delivery of last resort. The device
// session picks the notification up from its local feed or the event
// channel instead of the push gateway.
type LocalNotifier interface {
	Schedule(ctx context.Context, notification *entity.Notification) error
}
