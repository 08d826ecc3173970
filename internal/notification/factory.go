package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contract-service/internal/logging"
	"contract-service/internal/models"
)

// Factory turns a NotificationEvent into one persisted Notification plus one
// DeliveryTask per enabled channel. The notification is written before any
// task, so a reader never sees a task for a notification that does not
// exist.
type Factory struct {
	notifications NotificationStore
	tasks         TaskStore
	resolver      *Resolver
	logger        *logging.Logger
	now           func() time.Time
}

func NewFactory(notifications NotificationStore, tasks TaskStore, resolver *Resolver, logger *logging.Logger) *Factory {
	return &Factory{
		notifications: notifications,
		tasks:         tasks,
		resolver:      resolver,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateFromEvent is the single entry point for all notification creation,
// whether the event came from the scanner or from a domain action.
func (f *Factory) CreateFromEvent(ctx context.Context, ev models.NotificationEvent) (models.Notification, error) {
	if !ev.Kind.Valid() {
		return models.Notification{}, fmt.Errorf("unknown event kind %q", ev.Kind)
	}

	prefs, err := f.resolver.Resolve(ctx, ev.UserID, ev.Kind)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to resolve channels for user %d: %w", ev.UserID, err)
	}

	now := f.now()
	n := models.Notification{
		ID:        uuid.New(),
		UserID:    ev.UserID,
		Kind:      ev.Kind,
		Category:  models.CategoryFor(ev.Kind),
		Message:   ev.Message,
		Meta:      ev.Meta,
		Read:      false,
		CreatedAt: now,
		ExpiresAt: now.AddDate(0, 0, models.RetentionDays),
	}
	if err := f.notifications.CreateNotification(ctx, n); err != nil {
		return models.Notification{}, fmt.Errorf("failed to persist notification: %w", err)
	}

	for _, channel := range prefs.EnabledChannels() {
		task := models.DeliveryTask{
			ID:             uuid.New(),
			NotificationID: n.ID,
			Channel:        channel,
			Status:         models.TaskPending,
			CreatedAt:      now,
		}
		if err := f.tasks.CreateDeliveryTask(ctx, task); err != nil {
			return models.Notification{}, fmt.Errorf("failed to enqueue %s delivery for notification %s: %w", channel, n.ID, err)
		}
	}

	f.logger.Infof("Created notification %s kind=%s user=%d channels=%d", n.ID, n.Kind, n.UserID, len(prefs.EnabledChannels()))
	return n, nil
}
