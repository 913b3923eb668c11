package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"counsel/config"
	"counsel/internal/domain/constants"
	"counsel/internal/domain/entity"
	domainSvc "counsel/internal/domain/service"
	mockRepo "counsel/internal/mocks/repository"
	mockSvc "counsel/internal/mocks/service"
	"counsel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pushTestConfig(sandbox bool) *config.Config {
	cfg := &config.Config{}
	cfg.Push = &config.PushConfig{
		Provider: constants.PushProviderExpo,
		Endpoint: "http://gateway.local/push",
		Sandbox:  sandbox,
	}

	return cfg
}

func createTestNotificationService(t *testing.T, cfg *config.Config) (
	usecase.NotificationUsecase,
	*mockRepo.MockNotificationRepository,
	*mockRepo.MockDeviceRepository,
	*mockRepo.MockLocalNotificationStore,
	*mockSvc.MockPushService,
	*mockSvc.MockLocalNotifier,
) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	localStore := mockRepo.NewMockLocalNotificationStore(t)
	pushSvc := mockSvc.NewMockPushService(t)
	localNotifier := mockSvc.NewMockLocalNotifier(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	service := NewNotificationService(
		cfg,
		notificationRepo,
		deviceRepo,
		localStore,
		pushSvc,
		localNotifier,
		logger,
	)

	return service, notificationRepo, deviceRepo, localStore, pushSvc, localNotifier
}

func testDevices(userID uuid.UUID, tokens ...string) []*entity.UserDevice {
	devices := make([]*entity.UserDevice, 0, len(tokens))
	for _, token := range tokens {
		devices = append(devices, &entity.UserDevice{
			ID:        uuid.New(),
			UserID:    userID,
			PushToken: token,
			IsActive:  true,
		})
	}

	return devices
}

func TestNotificationService_CreateNotification_FullSuccess(t *testing.T) {
	service, notificationRepo, deviceRepo, localStore, pushSvc, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(nil)
	deviceRepo.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(testDevices(userID, "tok-1"), nil)
	pushSvc.EXPECT().Send(ctx, mock.Anything).Return(nil)
	localStore.EXPECT().Append(ctx, userID, mock.Anything).Return(nil)

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "Case update",
		Body:   "A new document was filed",
		Type:   constants.NotificationTypeCase,
	})

	require.NotNil(t, result)
	assert.True(t, result.Database)
	assert.True(t, result.Push)
	assert.True(t, result.Local)
	assert.True(t, result.Success)
	assert.False(t, result.Fallback)
}

func TestNotificationService_CreateNotification_NoDevicesFallsBackToLocal(t *testing.T) {
	service, notificationRepo, deviceRepo, localStore, _, localNotifier := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(nil)
	deviceRepo.EXPECT().FindActiveDevicesByUser(ctx, userID).Return([]*entity.UserDevice{}, nil)
	localStore.EXPECT().Append(ctx, userID, mock.Anything).Return(nil)
	localNotifier.EXPECT().Schedule(ctx, mock.Anything).Return(nil)

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "t",
		Body:   "b",
	})

	// No gateway send may happen; the push mock has no expectation set.
	assert.True(t, result.Database)
	assert.False(t, result.Push)
	assert.True(t, result.Local)
	assert.True(t, result.Success)
	assert.False(t, result.Fallback)
}

func TestNotificationService_CreateNotification_SandboxSkipsGateway(t *testing.T) {
	service, notificationRepo, _, localStore, _, localNotifier := createTestNotificationService(t, pushTestConfig(true))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(nil)
	localStore.EXPECT().Append(ctx, userID, mock.Anything).Return(nil)
	localNotifier.EXPECT().Schedule(ctx, mock.Anything).Return(nil)

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "t",
		Body:   "b",
	})

	// Sandbox never touches the device registry or the gateway.
	assert.False(t, result.Push)
	assert.True(t, result.Success)
}

func TestNotificationService_CreateNotification_OneTokenOKIsPushSuccess(t *testing.T) {
	service, notificationRepo, deviceRepo, localStore, pushSvc, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(nil)
	deviceRepo.EXPECT().FindActiveDevicesByUser(ctx, userID).
		Return(testDevices(userID, "tok-dead", "tok-live", "tok-stale"), nil)
	localStore.EXPECT().Append(ctx, userID, mock.Anything).Return(nil)

	pushSvc.EXPECT().Send(ctx, mock.Anything).RunAndReturn(func(_ context.Context, msg *domainSvc.PushMessage) error {
		if msg.To == "tok-live" {
			return nil
		}

		return errors.New("DeviceNotRegistered")
	})

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "t",
		Body:   "b",
	})

	assert.True(t, result.Push)
	assert.True(t, result.Success)
	assert.False(t, result.Fallback)
}

func TestNotificationService_CreateNotification_AllTokensFailFallsBack(t *testing.T) {
	service, notificationRepo, deviceRepo, localStore, pushSvc, localNotifier := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(nil)
	deviceRepo.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(testDevices(userID, "tok-1", "tok-2"), nil)
	pushSvc.EXPECT().Send(ctx, mock.Anything).Return(errors.New("gateway rejected"))
	localStore.EXPECT().Append(ctx, userID, mock.Anything).Return(nil)
	localNotifier.EXPECT().Schedule(ctx, mock.Anything).Return(nil)

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "t",
		Body:   "b",
	})

	assert.True(t, result.Database)
	assert.False(t, result.Push)
	assert.True(t, result.Success)
	assert.False(t, result.Fallback)
}

func TestNotificationService_CreateNotification_TotalWhenEverythingFails(t *testing.T) {
	service, notificationRepo, deviceRepo, localStore, _, localNotifier := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(errors.New("connection refused"))
	deviceRepo.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(nil, errors.New("table missing"))
	localStore.EXPECT().Append(ctx, userID, mock.Anything).Return(errors.New("disk full"))
	localNotifier.EXPECT().Schedule(ctx, mock.Anything).Return(errors.New("bus down"))

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "t",
		Body:   "b",
	})

	// Every channel failed and the call still returns a result: the caller
	// is told the notification survives only as a local fallback.
	require.NotNil(t, result)
	assert.False(t, result.Database)
	assert.False(t, result.Push)
	assert.False(t, result.Local)
	assert.True(t, result.Fallback)
	assert.True(t, result.Success)
}

func TestNotificationService_CreateNotification_MirrorHasLocalID(t *testing.T) {
	service, notificationRepo, deviceRepo, localStore, _, localNotifier := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	var mirror *entity.Notification
	notificationRepo.EXPECT().CreateNotification(ctx, mock.Anything).Return(errors.New("down"))
	deviceRepo.EXPECT().FindActiveDevicesByUser(ctx, userID).Return(nil, errors.New("down"))
	localStore.EXPECT().Append(ctx, userID, mock.Anything).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, record *entity.Notification) error {
			mirror = record

			return nil
		})
	localNotifier.EXPECT().Schedule(ctx, mock.Anything).Return(nil)

	result := service.CreateNotification(ctx, usecase.CreateNotificationParams{
		UserID: userID,
		Title:  "t",
		Body:   "b",
	})

	require.NotNil(t, mirror)
	assert.True(t, strings.HasPrefix(mirror.ID, entity.LocalIDPrefix))
	assert.True(t, mirror.IsLocalOnly)
	assert.Same(t, mirror, result.Notification)
}

func TestNotificationService_GetUserNotifications_MergesAndSorts(t *testing.T) {
	service, notificationRepo, _, localStore, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()
	base := time.Now()

	remote := []*entity.Notification{
		{ID: "r-new", UserID: userID, CreatedAt: base},
		{ID: "r-old", UserID: userID, CreatedAt: base.Add(-2 * time.Hour)},
	}
	local := []*entity.Notification{
		{ID: "local_mid", UserID: userID, CreatedAt: base.Add(-time.Hour), IsLocalOnly: true},
	}

	notificationRepo.EXPECT().FindNotificationsByUser(ctx, userID, remoteHistoryLimit).Return(remote, nil)
	localStore.EXPECT().GetAll(ctx, userID).Return(local, nil)

	merged, err := service.GetUserNotifications(ctx, userID)
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, "r-new", merged[0].ID)
	assert.Equal(t, "local_mid", merged[1].ID)
	assert.Equal(t, "r-old", merged[2].ID)
}

func TestNotificationService_GetUserNotifications_RemoteFailureServesLocal(t *testing.T) {
	service, notificationRepo, _, localStore, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().FindNotificationsByUser(ctx, userID, remoteHistoryLimit).
		Return(nil, errors.New("remote down"))
	localStore.EXPECT().GetAll(ctx, userID).Return([]*entity.Notification{
		{ID: "local_only", UserID: userID, IsLocalOnly: true},
	}, nil)

	merged, err := service.GetUserNotifications(ctx, userID)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "local_only", merged[0].ID)
}

func TestNotificationService_GetUserNotifications_KeepsDuplicates(t *testing.T) {
	service, notificationRepo, _, localStore, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()
	at := time.Now()

	// The same logical notification can exist as a remote row and a local
	// mirror; the merge does not deduplicate.
	notificationRepo.EXPECT().FindNotificationsByUser(ctx, userID, remoteHistoryLimit).
		Return([]*entity.Notification{{ID: "r-1", UserID: userID, Title: "t", CreatedAt: at}}, nil)
	localStore.EXPECT().GetAll(ctx, userID).
		Return([]*entity.Notification{{ID: "local_1", UserID: userID, Title: "t", CreatedAt: at, IsLocalOnly: true}}, nil)

	merged, err := service.GetUserNotifications(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, merged, 2)
}

func TestNotificationService_GetUnreadCount_HonorsLegacyReadFlag(t *testing.T) {
	service, notificationRepo, _, localStore, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().FindNotificationsByUser(ctx, userID, remoteHistoryLimit).
		Return([]*entity.Notification{
			{ID: "r-unread", UserID: userID},
			{ID: "r-read", UserID: userID, Read: true},
		}, nil)
	localStore.EXPECT().GetAll(ctx, userID).
		Return([]*entity.Notification{
			{ID: "local_legacy_read", UserID: userID, IsRead: true, IsLocalOnly: true},
			{ID: "local_unread", UserID: userID, IsLocalOnly: true},
		}, nil)

	count, err := service.GetUnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNotificationService_MarkAsRead_RewritesLocalSubset(t *testing.T) {
	service, notificationRepo, _, localStore, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.EXPECT().MarkAsRead(ctx, "local_42", userID).Return(errors.New("not a row id"))

	stored := []*entity.Notification{
		{ID: "local_42", UserID: userID, IsLocalOnly: true},
		{ID: "local_43", UserID: userID, IsLocalOnly: true},
	}
	localStore.EXPECT().GetAll(ctx, userID).Return(stored, nil)

	var rewritten []*entity.Notification
	localStore.EXPECT().ReplaceAll(ctx, userID, mock.Anything).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, records []*entity.Notification) error {
			rewritten = records

			return nil
		})

	require.NoError(t, service.MarkAsRead(ctx, "local_42", userID))

	require.Len(t, rewritten, 2)
	assert.True(t, rewritten[0].Read)
	assert.False(t, rewritten[1].Read)
}

func TestNotificationService_MarkAllAsRead_Idempotent(t *testing.T) {
	service, notificationRepo, _, localStore, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()

	stored := []*entity.Notification{
		{ID: "local_1", UserID: userID, IsLocalOnly: true},
		{ID: "local_2", UserID: userID, Read: true, IsLocalOnly: true},
	}

	notificationRepo.EXPECT().MarkAllAsRead(ctx, userID).Return(nil).Twice()
	localStore.EXPECT().GetAll(ctx, userID).Return(stored, nil).Twice()
	localStore.EXPECT().ReplaceAll(ctx, userID, mock.Anything).Return(nil).Twice()

	require.NoError(t, service.MarkAllAsRead(ctx, userID))
	for _, record := range stored {
		assert.False(t, record.Unread())
	}

	// A second pass changes nothing and still succeeds.
	require.NoError(t, service.MarkAllAsRead(ctx, userID))
	for _, record := range stored {
		assert.False(t, record.Unread())
	}
}

func TestNotificationService_DeleteNotification_RemoteOnly(t *testing.T) {
	service, notificationRepo, _, _, _, _ := createTestNotificationService(t, pushTestConfig(false))

	ctx := context.Background()
	userID := uuid.New()
	id := uuid.NewString()

	notificationRepo.EXPECT().DeleteNotification(ctx, id, userID).Return(nil)

	require.NoError(t, service.DeleteNotification(ctx, id, userID))
}

func TestNotificationService_DeleteNotification_LocalIDIsNoop(t *testing.T) {
	service, _, _, _, _, _ := createTestNotificationService(t, pushTestConfig(false))

	// Local-only records are never deleted remotely; they age out of the
	// capped store instead.
	require.NoError(t, service.DeleteNotification(context.Background(), "local_123_abc", uuid.New()))
}
