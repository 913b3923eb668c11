package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"counsel/internal/domain/entity"
	mockRepo "counsel/internal/mocks/repository"
	"counsel/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestDeviceService(t *testing.T) (usecase.DeviceUsecase, *mockRepo.MockDeviceRepository) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewDeviceService(deviceRepo, logger), deviceRepo
}

func TestDeviceService_RegisterDevice_Success(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	var upserted *entity.UserDevice
	deviceRepo.EXPECT().UpsertDevice(ctx, mock.Anything).
		RunAndReturn(func(_ context.Context, device *entity.UserDevice) error {
			upserted = device

			return nil
		})

	err := service.RegisterDevice(ctx, userID, usecase.DeviceInfo{
		PushToken:  "ExponentPushToken[abc]",
		DeviceType: "ios",
	})
	require.NoError(t, err)

	require.NotNil(t, upserted)
	assert.Equal(t, userID, upserted.UserID)
	assert.Equal(t, "ExponentPushToken[abc]", upserted.PushToken)
	assert.Equal(t, "ios", upserted.DeviceType)
	assert.True(t, upserted.IsActive)
}

func TestDeviceService_RegisterDevice_MissingToken(t *testing.T) {
	service, _ := createTestDeviceService(t)

	err := service.RegisterDevice(context.Background(), uuid.New(), usecase.DeviceInfo{DeviceType: "android"})
	assert.ErrorIs(t, err, ErrMissingPushToken)
}

func TestDeviceService_RegisterDevice_RepositoryError(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	deviceRepo.EXPECT().UpsertDevice(ctx, mock.Anything).Return(errors.New("constraint violated"))

	err := service.RegisterDevice(ctx, uuid.New(), usecase.DeviceInfo{PushToken: "tok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register device")
}

func TestDeviceService_UnregisterDevice_Success(t *testing.T) {
	service, deviceRepo := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.EXPECT().DeactivateDevice(ctx, userID, "tok").Return(nil)

	require.NoError(t, service.UnregisterDevice(ctx, userID, "tok"))
}

func TestDeviceService_UnregisterDevice_MissingToken(t *testing.T) {
	service, _ := createTestDeviceService(t)

	err := service.UnregisterDevice(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrMissingPushToken)
}
