// Package notification contains the contract lifecycle core: preference
// resolution, notification fan-out, the expiration scanner, the delivery
// queue processor, and the retention cleanup job.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"contract-service/internal/models"
)

// ContractStore is the slice of the data store the scanner needs.
type ContractStore interface {
	ListActiveContracts(ctx context.Context) ([]models.Contract, error)
	MarkContractExpired(ctx context.Context, contractID int64) error
}

// NotificationStore is the slice of the data store the factory and cleanup
// job need.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	GetNotification(ctx context.Context, id uuid.UUID) (models.Notification, error)
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// TaskStore is the delivery queue. Rows with status=pending are the queue;
// the processor owns every mutation.
type TaskStore interface {
	CreateDeliveryTask(ctx context.Context, t models.DeliveryTask) error
	PendingDeliveryTasks(ctx context.Context) ([]models.DeliveryTask, error)
	MarkTaskSent(ctx context.Context, id uuid.UUID, processedAt time.Time) error
	RecordTaskFailure(ctx context.Context, id uuid.UUID, attempts int, lastError string, processedAt time.Time) error
}

// PreferenceStore backs the preference resolver.
type PreferenceStore interface {
	GetPreference(ctx context.Context, userID int64, kind models.EventKind) (models.PreferenceRecord, error)
	UpsertPreference(ctx context.Context, p models.PreferenceRecord) error
}
