// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"counsel/internal/domain/entity"
	domainerrors "counsel/internal/domain/errors"
	"counsel/internal/domain/repository"
	"counsel/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// CreateNotification persists a new notification row.
func (repo *notificationRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrNotificationWriteFailed.WrapMessage("missing required notification information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	// Update the entity with generated values
	notification.ID = notificationM.ID.String()
	notification.CreatedAt = notificationM.CreatedAt
	notification.UpdatedAt = notificationM.UpdatedAt

	return nil
}

// FindNotificationsByUser retrieves up to limit most-recent notifications for a user.
func (repo *notificationRepository) FindNotificationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error) {
	var notificationModels []*model.NotificationModel

	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find notifications by user")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return notifications, nil
}

// MarkAsRead sets read=true on a single notification owned by the user.
func (repo *notificationRepository) MarkAsRead(ctx context.Context, id string, userID uuid.UUID) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		// Local-only IDs never exist in the remote store.
		return repository.ErrNotificationNotFound
	}

	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark notification as read")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead sets read=true on every unread notification of the user.
func (repo *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		return errors.Wrap(err, "failed to mark all notifications as read")
	}

	return nil
}

// DeleteNotification removes a notification owned by the user.
func (repo *notificationRepository) DeleteNotification(ctx context.Context, id string, userID uuid.UUID) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return repository.ErrNotificationNotFound
	}

	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&model.NotificationModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete notification")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toNotificationDomain converts a GORM NotificationModel to a domain Notification entity.
func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:        data.ID.String(),
		UserID:    data.UserID,
		Title:     data.Title,
		Body:      data.Body,
		Type:      data.Type,
		Category:  data.Category,
		Read:      data.Read,
		Data:      fromJSONMap(data.Data),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromNotificationDomain converts a domain Notification entity to a GORM NotificationModel.
// The ID is left for the database to assign.
func fromNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		UserID:   data.UserID,
		Title:    data.Title,
		Body:     data.Body,
		Type:     data.Type,
		Category: data.Category,
		Read:     data.Read,
		Data:     toJSONMap(data.Data),
	}
}

func toJSONMap(data map[string]string) datatypes.JSONMap {
	if len(data) == 0 {
		return nil
	}

	out := make(datatypes.JSONMap, len(data))
	for k, v := range data {
		out[k] = v
	}

	return out
}

func fromJSONMap(data datatypes.JSONMap) map[string]string {
	if len(data) == 0 {
		return nil
	}

	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}

	return out
}
