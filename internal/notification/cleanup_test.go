package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-service/internal/logging"
	"contract-service/internal/models"
)

func TestCleanupDeletesReadPastRetentionOnly(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC)

	readOld := models.Notification{ID: uuid.New(), UserID: 1, Read: true, CreatedAt: now.AddDate(0, 0, -35)}
	unreadOld := models.Notification{ID: uuid.New(), UserID: 1, Read: false, CreatedAt: now.AddDate(0, 0, -60)}
	readFresh := models.Notification{ID: uuid.New(), UserID: 1, Read: true, CreatedAt: now.AddDate(0, 0, -5)}
	for _, n := range []models.Notification{readOld, unreadOld, readFresh} {
		require.NoError(t, store.CreateNotification(context.Background(), n))
	}
	require.NoError(t, store.CreateDeliveryTask(context.Background(), models.DeliveryTask{
		ID:             uuid.New(),
		NotificationID: readOld.ID,
		Channel:        models.ChannelInApp,
		Status:         models.TaskSent,
		CreatedAt:      readOld.CreatedAt,
	}))

	cleanup := NewCleanup(store, logging.NewNop())
	cleanup.now = func() time.Time { return now }
	require.NoError(t, cleanup.Run(context.Background()))

	_, err := store.GetNotification(context.Background(), readOld.ID)
	assert.Error(t, err, "read notification past retention must be deleted")

	_, err = store.GetNotification(context.Background(), unreadOld.ID)
	assert.NoError(t, err, "unread notification must be retained regardless of age")

	_, err = store.GetNotification(context.Background(), readFresh.ID)
	assert.NoError(t, err, "read notification inside retention must be retained")

	assert.Empty(t, store.allTasks(), "delivery tasks of purged notifications go with them")
}

func TestCleanupIsIdempotent(t *testing.T) {
	store := newMemStore()
	now := time.Now()
	require.NoError(t, store.CreateNotification(context.Background(), models.Notification{
		ID: uuid.New(), UserID: 1, Read: true, CreatedAt: now.AddDate(0, 0, -40),
	}))

	cleanup := NewCleanup(store, logging.NewNop())
	require.NoError(t, cleanup.Run(context.Background()))
	require.NoError(t, cleanup.Run(context.Background()))
	assert.Empty(t, store.allNotifications())
}
