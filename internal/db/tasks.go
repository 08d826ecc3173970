package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"contract-service/internal/models"
)

func (d *DB) CreateDeliveryTask(ctx context.Context, t models.DeliveryTask) error {
	query := `
        INSERT INTO delivery_tasks (
            id, notification_id, channel, status, attempts, last_error, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := d.Pool.Exec(ctx, query,
		t.ID, t.NotificationID, t.Channel, t.Status, t.Attempts, t.LastError, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create delivery task: %w", err)
	}
	return nil
}

// PendingDeliveryTasks returns every task still eligible for processing.
func (d *DB) PendingDeliveryTasks(ctx context.Context) ([]models.DeliveryTask, error) {
	query := `
        SELECT id, notification_id, channel, status, attempts, last_error, created_at, processed_at
        FROM delivery_tasks
        WHERE status = 'pending' AND attempts < $1
        ORDER BY created_at`
	rows, err := d.Pool.Query(ctx, query, models.MaxDeliveryAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending delivery tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.DeliveryTask
	for rows.Next() {
		var t models.DeliveryTask
		var id, notifID pgtype.UUID
		err := rows.Scan(
			&id, &notifID, &t.Channel, &t.Status, &t.Attempts,
			&t.LastError, &t.CreatedAt, &t.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery task: %w", err)
		}
		t.ID = id.Bytes
		t.NotificationID = notifID.Bytes
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// MarkTaskSent records a successful delivery. Terminal rows are left alone.
func (d *DB) MarkTaskSent(ctx context.Context, id uuid.UUID, processedAt time.Time) error {
	query := `
        UPDATE delivery_tasks
        SET status = 'sent', processed_at = $1
        WHERE id = $2 AND status = 'pending'`
	_, err := d.Pool.Exec(ctx, query, processedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark task %s sent: %w", id, err)
	}
	return nil
}

// RecordTaskFailure bumps the attempt counter and, once the cap is reached,
// moves the task to its terminal failed status.
func (d *DB) RecordTaskFailure(ctx context.Context, id uuid.UUID, attempts int, lastError string, processedAt time.Time) error {
	status := models.TaskPending
	if attempts >= models.MaxDeliveryAttempts {
		status = models.TaskFailed
	}
	query := `
        UPDATE delivery_tasks
        SET status = $1, attempts = $2, last_error = $3,
            processed_at = CASE WHEN $1 = 'failed' THEN $4 ELSE processed_at END
        WHERE id = $5 AND status = 'pending'`
	_, err := d.Pool.Exec(ctx, query, status, attempts, lastError, processedAt, id)
	if err != nil {
		return fmt.Errorf("failed to record failure for task %s: %w", id, err)
	}
	return nil
}
