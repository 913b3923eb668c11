package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"counsel/config"
	"counsel/internal/domain/constants"
	"counsel/internal/domain/entity"
	"counsel/internal/domain/repository"
	"counsel/internal/domain/service"
	"counsel/internal/usecase"

	"github.com/google/uuid"
)

const (
	// remoteHistoryLimit bounds how many rows the remote store contributes
	// to the merged feed. Local records are never capped here; the store
	// caps them itself.
	remoteHistoryLimit = 50
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
	deviceRepo       repository.DeviceRepository
	localStore       repository.LocalNotificationStore
	pushSvc          service.PushService
	localNotifier    service.LocalNotifier
	logger           *slog.Logger

	pushEnabled bool
	sandbox     bool
}

// NewNotificationService creates the notification delivery orchestrator.
func NewNotificationService(
	cfg *config.Config,
	notificationRepo repository.NotificationRepository,
	deviceRepo repository.DeviceRepository,
	localStore repository.LocalNotificationStore,
	pushSvc service.PushService,
	localNotifier service.LocalNotifier,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	pushEnabled := cfg.Push != nil &&
		cfg.Push.Provider != "" &&
		cfg.Push.Provider != constants.PushProviderDisabled
	sandbox := cfg.Push != nil && cfg.Push.Sandbox

	return &notificationService{
		notificationRepo: notificationRepo,
		deviceRepo:       deviceRepo,
		localStore:       localStore,
		pushSvc:          pushSvc,
		localNotifier:    localNotifier,
		logger:           logger,
		pushEnabled:      pushEnabled,
		sandbox:          sandbox,
	}
}

// CreateNotification runs the delivery chain. Every failure is absorbed into
// the result flags; the user must end up with the notification somewhere,
// so this method never returns an error.
func (s *notificationService) CreateNotification(ctx context.Context, params usecase.CreateNotificationParams) *usecase.DeliveryResult {
	now := time.Now()

	notification := &entity.Notification{
		UserID:    params.UserID,
		Title:     params.Title,
		Body:      params.Body,
		Type:      params.Type,
		Category:  params.Category,
		Data:      params.Data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if notification.Type == "" {
		notification.Type = constants.NotificationTypeInfo
	}

	result := &usecase.DeliveryResult{Notification: notification}

	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		s.logger.Error("Remote notification write failed",
			slog.String("user_id", params.UserID.String()),
			slog.Any("error", err),
		)
	} else {
		result.Database = true
	}

	result.Push = s.deliverPush(ctx, params)

	// The local mirror is written unconditionally so the feed survives
	// remote outages and the device can render it offline.
	mirror := s.mirrorRecord(notification, now)
	if err := s.localStore.Append(ctx, params.UserID, mirror); err != nil {
		s.logger.Error("Local notification mirror failed",
			slog.String("user_id", params.UserID.String()),
			slog.Any("error", err),
		)
	} else {
		result.Local = true
	}

	if !result.Push {
		if err := s.localNotifier.Schedule(ctx, mirror); err != nil {
			s.logger.Warn("Local notification scheduling failed",
				slog.String("user_id", params.UserID.String()),
				slog.Any("error", err),
			)
		}
	}

	if !result.Database {
		result.Notification = mirror
	}

	result.Success = result.Database || result.Push
	if !result.Success {
		// Nothing reached the hosted side, but the mirror and the local
		// notifier still surface the message on the device.
		result.Success = true
		result.Fallback = true
	}

	return result
}

// deliverPush resolves the user's devices and fans the message out, one
// concurrent send per token. Returns true when at least one gateway send
// was accepted.
func (s *notificationService) deliverPush(ctx context.Context, params usecase.CreateNotificationParams) bool {
	if !s.pushEnabled {
		s.logger.Debug("Push delivery disabled, falling back to local",
			slog.String("user_id", params.UserID.String()),
		)

		return false
	}

	if s.sandbox {
		s.logger.Info("Sandbox build, skipping push gateway",
			slog.String("user_id", params.UserID.String()),
		)

		return false
	}

	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, params.UserID)
	if err != nil {
		s.logger.Warn("Device lookup failed, falling back to local",
			slog.String("user_id", params.UserID.String()),
			slog.Any("error", err),
		)

		return false
	}

	if len(devices) == 0 {
		s.logger.Debug("No active devices, falling back to local",
			slog.String("user_id", params.UserID.String()),
		)

		return false
	}

	sendErrs := make([]error, len(devices))

	var wg sync.WaitGroup
	for i, device := range devices {
		wg.Add(1)
		go func(idx int, token string) {
			defer wg.Done()

			sendErrs[idx] = s.pushSvc.Send(ctx, &service.PushMessage{
				To:    token,
				Title: params.Title,
				Body:  params.Body,
				Data:  params.Data,
			})
		}(i, device.PushToken)
	}
	wg.Wait()

	delivered := false
	for i, sendErr := range sendErrs {
		if sendErr != nil {
			s.logger.Warn("Push send failed",
				slog.String("user_id", params.UserID.String()),
				slog.String("push_token", devices[i].PushToken),
				slog.Any("error", sendErr),
			)

			continue
		}
		delivered = true
	}

	return delivered
}

// GetUserNotifications returns the merged remote and local feed, newest
// first. A remote outage degrades to the local feed alone.
func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	return s.mergedNotifications(ctx, userID), nil
}

// GetUnreadCount counts merged records that neither store has marked read.
func (s *notificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, notification := range s.mergedNotifications(ctx, userID) {
		if notification.Unread() {
			count++
		}
	}

	return count, nil
}

// MarkAsRead marks one notification read. The remote update is best effort;
// the local feed is rewritten so the read state sticks on the device.
func (s *notificationService) MarkAsRead(ctx context.Context, id string, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAsRead(ctx, id, userID); err != nil {
		s.logger.Warn("Remote mark-as-read failed",
			slog.String("notification_id", id),
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}

	return s.rewriteLocal(ctx, userID, func(record *entity.Notification) bool {
		return record.ID == id
	})
}

// MarkAllAsRead marks every notification of the user read in both stores.
func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		s.logger.Warn("Remote mark-all-as-read failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}

	return s.rewriteLocal(ctx, userID, func(*entity.Notification) bool {
		return true
	})
}

// DeleteNotification removes a notification from the remote store. Local
// mirror copies are not deleted; they age out through the store's cap.
func (s *notificationService) DeleteNotification(ctx context.Context, id string, userID uuid.UUID) error {
	if strings.HasPrefix(id, entity.LocalIDPrefix) {
		s.logger.Debug("Delete of local-only notification skipped, record ages out",
			slog.String("notification_id", id),
		)

		return nil
	}

	return s.notificationRepo.DeleteNotification(ctx, id, userID)
}

// mergedNotifications concatenates the remote page and the full local feed
// and stable-sorts by creation time. Duplicates between the stores are kept;
// the client keys rendering on ID.
func (s *notificationService) mergedNotifications(ctx context.Context, userID uuid.UUID) []*entity.Notification {
	merged := make([]*entity.Notification, 0, remoteHistoryLimit)

	remote, err := s.notificationRepo.FindNotificationsByUser(ctx, userID, remoteHistoryLimit)
	if err != nil {
		s.logger.Warn("Remote notification fetch failed, serving local feed only",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	} else {
		merged = append(merged, remote...)
	}

	local, err := s.localStore.GetAll(ctx, userID)
	if err != nil {
		s.logger.Warn("Local notification fetch failed",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	} else {
		merged = append(merged, local...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged
}

// rewriteLocal loads the local feed, applies read=true to matching records
// and writes the feed back. Only locally-stored records are rewritten; the
// remote rows were already handled by their own update.
func (s *notificationService) rewriteLocal(ctx context.Context, userID uuid.UUID, match func(*entity.Notification) bool) error {
	records, err := s.localStore.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, record := range records {
		if match(record) && record.Unread() {
			record.Read = true
			record.IsRead = false
			record.UpdatedAt = now
		}
	}

	return s.localStore.ReplaceAll(ctx, userID, records)
}

// mirrorRecord copies the notification under a client-generated local ID so
// the mirror never collides with a server-assigned row ID.
func (s *notificationService) mirrorRecord(notification *entity.Notification, now time.Time) *entity.Notification {
	mirror := *notification
	mirror.ID = newLocalID(now)
	mirror.IsLocalOnly = true

	return &mirror
}

func newLocalID(now time.Time) string {
	return fmt.Sprintf("%s%d_%s", entity.LocalIDPrefix, now.UnixMilli(), uuid.NewString()[:8])
}
