package notification

import (
	"context"
	"fmt"
	"time"

	"contract-service/internal/logging"
	"contract-service/internal/models"
)

// Cleanup purges read notifications past retention. Unread notifications are
// kept regardless of age. The delete is idempotent, so there is no retry
// bookkeeping; a failed run is simply retried by the next daily tick.
type Cleanup struct {
	notifications NotificationStore
	logger        *logging.Logger
	now           func() time.Time
}

func NewCleanup(notifications NotificationStore, logger *logging.Logger) *Cleanup {
	return &Cleanup{
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

func (c *Cleanup) Run(ctx context.Context) error {
	cutoff := c.now().AddDate(0, 0, -models.RetentionDays)
	deleted, err := c.notifications.DeleteReadNotificationsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("retention cleanup failed: %w", err)
	}
	c.logger.Infof("Retention cleanup deleted %d notifications older than %s", deleted, cutoff.Format("2006-01-02"))
	return nil
}
