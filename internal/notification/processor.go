package notification

import (
	"context"
	"fmt"
	"time"

	"contract-service/internal/dispatch"
	"contract-service/internal/logging"
	"contract-service/internal/models"
)

// Processor drains the delivery queue. Each tick it loads every pending task
// under the attempt cap, invokes the dispatcher for the task's channel, and
// records the outcome. Tasks fail independently; a panic or error in one
// dispatch never aborts the rest of the batch.
type Processor struct {
	tasks         TaskStore
	notifications NotificationStore
	dispatchers   map[models.Channel]dispatch.Dispatcher
	logger        *logging.Logger
	now           func() time.Time
}

func NewProcessor(tasks TaskStore, notifications NotificationStore, dispatchers map[models.Channel]dispatch.Dispatcher, logger *logging.Logger) *Processor {
	return &Processor{
		tasks:         tasks,
		notifications: notifications,
		dispatchers:   dispatchers,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes one processing tick.
func (p *Processor) Run(ctx context.Context) error {
	pending, err := p.tasks.PendingDeliveryTasks(ctx)
	if err != nil {
		return fmt.Errorf("queue processing aborted: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	var sent, failed int
	for _, task := range pending {
		if err := p.process(ctx, task); err != nil {
			failed++
		} else {
			sent++
		}
	}
	p.logger.Infof("Queue tick finished: %d sent, %d failed attempts", sent, failed)
	return nil
}

func (p *Processor) process(ctx context.Context, task models.DeliveryTask) error {
	err := p.dispatchOne(ctx, task)
	if err == nil {
		if markErr := p.tasks.MarkTaskSent(ctx, task.ID, p.now()); markErr != nil {
			p.logger.Errorf("Task %s dispatched but status write failed: %v", task.ID, markErr)
			return markErr
		}
		return nil
	}

	attempts := task.Attempts + 1
	p.logger.Errorf("Dispatch via %s failed for task %s (attempt %d/%d): %v",
		task.Channel, task.ID, attempts, models.MaxDeliveryAttempts, err)
	if recErr := p.tasks.RecordTaskFailure(ctx, task.ID, attempts, err.Error(), p.now()); recErr != nil {
		p.logger.Errorf("Failed to record failure for task %s: %v", task.ID, recErr)
	}
	return err
}

// dispatchOne isolates a single delivery attempt. A panicking dispatcher
// degrades to one failed attempt.
func (p *Processor) dispatchOne(ctx context.Context, task models.DeliveryTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatcher panic: %v", r)
		}
	}()

	dispatcher, ok := p.dispatchers[task.Channel]
	if !ok {
		return fmt.Errorf("no dispatcher registered for channel %q", task.Channel)
	}

	n, err := p.notifications.GetNotification(ctx, task.NotificationID)
	if err != nil {
		return fmt.Errorf("failed to load notification %s: %w", task.NotificationID, err)
	}

	return dispatcher.Dispatch(ctx, n)
}
