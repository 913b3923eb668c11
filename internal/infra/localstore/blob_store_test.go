package localstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"counsel/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newTestStore(t *testing.T) *blobStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() {
		_ = bucket.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &blobStore{bucket: bucket, logger: logger}
}

func testNotification(userID uuid.UUID, id string, createdAt time.Time) *entity.Notification {
	return &entity.Notification{
		ID:        id,
		UserID:    userID,
		Title:     "title " + id,
		Body:      "body " + id,
		Type:      "info",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestBlobStoreAppendAndGetAll(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	first := testNotification(userID, "local_1", time.Now().Add(-time.Minute))
	second := testNotification(userID, "local_2", time.Now())

	require.NoError(t, store.Append(ctx, userID, first))
	require.NoError(t, store.Append(ctx, userID, second))

	records, err := store.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest append comes first.
	assert.Equal(t, "local_2", records[0].ID)
	assert.Equal(t, "local_1", records[1].ID)
	assert.True(t, records[0].IsLocalOnly)
	assert.True(t, records[1].IsLocalOnly)
}

func TestBlobStoreGetAllAbsentKey(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	records, err := store.GetAll(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBlobStoreGetAllCorruptBlob(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.bucket.WriteAll(ctx, storageKey(userID), []byte("{not json"), nil))

	records, err := store.GetAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBlobStoreAppendEnforcesCap(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < maxEntries+5; i++ {
		record := testNotification(userID, fmt.Sprintf("local_%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Append(ctx, userID, record))
	}

	records, err := store.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, maxEntries)

	// Newest survive, oldest are dropped.
	assert.Equal(t, fmt.Sprintf("local_%d", maxEntries+4), records[0].ID)
	assert.Equal(t, "local_5", records[maxEntries-1].ID)
}

func TestBlobStoreReplaceAll(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.Append(ctx, userID, testNotification(userID, "local_old", time.Now())))

	replacement := []*entity.Notification{
		testNotification(userID, "local_kept", time.Now()),
	}
	require.NoError(t, store.ReplaceAll(ctx, userID, replacement))

	records, err := store.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "local_kept", records[0].ID)
}

func TestBlobStoreIsolatesUsers(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, store.Append(ctx, alice, testNotification(alice, "local_a", time.Now())))

	records, err := store.GetAll(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, records)
}
