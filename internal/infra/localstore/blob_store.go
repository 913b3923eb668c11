// Package localstore persists the per-user fallback notification feed in
// key-value blob storage, the service-side stand-in for on-device storage.
package localstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"counsel/config"
	"counsel/internal/domain/entity"
	"counsel/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register file:// bucket driver
	_ "gocloud.dev/blob/memblob"  // register mem:// bucket driver
	"gocloud.dev/gcerrors"
)

const (
	keyPrefix = "local_notifications_"

	// maxEntries caps each user's feed; the oldest entries are dropped first.
	maxEntries = 100
)

// blobStore implements repository.LocalNotificationStore on a blob bucket.
type blobStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewBlobStore wraps an already-open bucket. Used directly by tests.
func NewBlobStore(bucket *blob.Bucket, logger *slog.Logger) repository.LocalNotificationStore {
	return &blobStore{
		bucket: bucket,
		logger: logger,
	}
}

// Params holds dependencies for the local store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured blob bucket and returns the store.
func New(params Params) (repository.LocalNotificationStore, error) {
	if params.Config.LocalStore == nil || params.Config.LocalStore.BucketURL == "" {
		return nil, errors.New("local store bucket URL is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, params.Config.LocalStore.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open local store bucket %s", params.Config.LocalStore.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobStore(bucket, params.Logger), nil
}

// Append prepends the record to the user's list and truncates to the cap.
// The read-modify-write cycle is not guarded against concurrent callers for
// the same user; last writer wins on the whole blob.
func (s *blobStore) Append(ctx context.Context, userID uuid.UUID, record *entity.Notification) error {
	records, err := s.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	records = append([]*entity.Notification{record}, records...)
	if len(records) > maxEntries {
		records = records[:maxEntries]
	}

	return s.write(ctx, userID, records)
}

// GetAll returns the user's stored records, newest first. An absent key or
// an undecodable blob yields an empty list.
func (s *blobStore) GetAll(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	raw, err := s.bucket.ReadAll(ctx, storageKey(userID))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return []*entity.Notification{}, nil
		}

		return nil, errors.Wrap(err, "failed to read local notification blob")
	}

	var records []*entity.Notification
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("Discarding undecodable local notification blob",
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)

		return []*entity.Notification{}, nil
	}

	for _, record := range records {
		record.IsLocalOnly = true
	}

	return records, nil
}

// ReplaceAll overwrites the user's stored list with exactly the given records.
func (s *blobStore) ReplaceAll(ctx context.Context, userID uuid.UUID, records []*entity.Notification) error {
	return s.write(ctx, userID, records)
}

func (s *blobStore) write(ctx context.Context, userID uuid.UUID, records []*entity.Notification) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "failed to serialize local notification blob")
	}

	if err := s.bucket.WriteAll(ctx, storageKey(userID), raw, nil); err != nil {
		return errors.Wrap(err, "failed to write local notification blob")
	}

	return nil
}

func storageKey(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}
