// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"counsel/internal/domain/entity"
	domainerrors "counsel/internal/domain/errors"
	"counsel/internal/domain/repository"
	"counsel/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deviceRepository implements the repository.DeviceRepository interface.
// Reads try the canonical device table first and fall back to the legacy
// table name left behind by an earlier schema migration.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// UpsertDevice registers a device or refreshes an existing registration for
// the same user and token.
func (repo *deviceRepository) UpsertDevice(ctx context.Context, device *entity.UserDevice) error {
	var existing model.UserDeviceModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND push_token = ?", device.UserID, device.PushToken).
		First(&existing).Error
	if err == nil {
		active := true
		updates := map[string]any{
			"device_type": device.DeviceType,
			"is_active":   &active,
		}
		if err := repo.db.WithContext(ctx).
			Model(&model.UserDeviceModel{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error; err != nil {
			return errors.Wrap(err, "failed to refresh device registration")
		}

		device.ID = existing.ID
		device.IsActive = true

		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to look up device registration")
	}

	deviceM := fromDeviceDomain(device)
	if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
		// A concurrent registration of the same token can slip past the
		// lookup above; the row already exists, so the registration stands.
		if isUniqueConstraintViolation(err) {
			return nil
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrDeviceRegistrationFailed.WrapMessage("missing required device information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to register device")
	}

	device.ID = deviceM.ID
	device.CreatedAt = deviceM.CreatedAt
	device.UpdatedAt = deviceM.UpdatedAt

	return nil
}

// FindActiveDevicesByUser retrieves the push-eligible devices of a user.
// A failed or empty read of the canonical table falls through to the legacy
// table; an error there too counts as "no devices" for the caller.
func (repo *deviceRepository) FindActiveDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := repo.findActiveInTable(ctx, model.DeviceTableName, userID)
	if err == nil && len(devices) > 0 {
		return devices, nil
	}

	legacyDevices, legacyErr := repo.findActiveInTable(ctx, model.DeviceLegacyTableName, userID)
	if legacyErr != nil {
		if err != nil {
			return nil, errors.Wrap(err, "failed to find devices in both candidate tables")
		}

		return devices, nil
	}

	return legacyDevices, nil
}

// findActiveInTable reads one candidate table, excluding rows whose active
// flag is explicitly false.
func (repo *deviceRepository) findActiveInTable(ctx context.Context, table string, userID uuid.UUID) ([]*entity.UserDevice, error) {
	var deviceModels []*model.UserDeviceModel

	if err := repo.db.WithContext(ctx).
		Table(table).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to find devices in %s", table)
	}

	devices := make([]*entity.UserDevice, 0, len(deviceModels))
	for _, deviceM := range deviceModels {
		if !deviceM.Active() {
			continue
		}
		devices = append(devices, toDeviceDomain(deviceM))
	}

	return devices, nil
}

// DeactivateDevice marks the device with the given token inactive.
func (repo *deviceRepository) DeactivateDevice(ctx context.Context, userID uuid.UUID, pushToken string) error {
	inactive := false
	result := repo.db.WithContext(ctx).
		Model(&model.UserDeviceModel{}).
		Where("user_id = ? AND push_token = ?", userID, pushToken).
		Update("is_active", &inactive)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to deactivate device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM UserDeviceModel to a domain UserDevice entity.
func toDeviceDomain(data *model.UserDeviceModel) *entity.UserDevice {
	if data == nil {
		return nil
	}

	return &entity.UserDevice{
		ID:         data.ID,
		UserID:     data.UserID,
		PushToken:  data.PushToken,
		DeviceType: data.DeviceType,
		IsActive:   data.Active(),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromDeviceDomain converts a domain UserDevice entity to a GORM UserDeviceModel.
func fromDeviceDomain(data *entity.UserDevice) *model.UserDeviceModel {
	if data == nil {
		return nil
	}

	isActive := data.IsActive

	return &model.UserDeviceModel{
		ID:         data.ID,
		UserID:     data.UserID,
		PushToken:  data.PushToken,
		DeviceType: data.DeviceType,
		IsActive:   &isActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
