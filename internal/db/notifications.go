package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"contract-service/internal/models"
)

func (d *DB) CreateNotification(ctx context.Context, n models.Notification) error {
	query := `
        INSERT INTO notifications (
            id, user_id, kind, category, message, metadata, read, created_at, expires_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := d.Pool.Exec(ctx, query,
		n.ID, n.UserID, n.Kind, n.Category, n.Message, n.Meta,
		n.Read, n.CreatedAt, n.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (d *DB) GetNotification(ctx context.Context, id uuid.UUID) (models.Notification, error) {
	query := `
        SELECT id, user_id, kind, category, message, metadata, read, created_at, expires_at
        FROM notifications
        WHERE id = $1`
	n, err := scanNotification(d.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Notification{}, ErrNotFound
		}
		return models.Notification{}, fmt.Errorf("failed to get notification %s: %w", id, err)
	}
	return n, nil
}

func (d *DB) ListNotificationsByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Notification, error) {
	query := `
        SELECT id, user_id, kind, category, message, metadata, read, created_at, expires_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	rows, err := d.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %d: %w", userID, err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (d *DB) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`
	if err := d.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for user %d: %w", userID, err)
	}
	return count, nil
}

func (d *DB) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DB) MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`
	result, err := d.Pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read for user %d: %w", userID, err)
	}
	return result.RowsAffected(), nil
}

// DeleteReadNotificationsBefore purges read notifications created before the
// cutoff, together with their delivery tasks. Unread rows are never touched.
func (d *DB) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin cleanup transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
        DELETE FROM delivery_tasks
        WHERE notification_id IN (
            SELECT id FROM notifications WHERE read = TRUE AND created_at < $1
        )`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale delivery tasks: %w", err)
	}

	result, err := tx.Exec(ctx, `
        DELETE FROM notifications
        WHERE read = TRUE AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read notifications: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit cleanup transaction: %w", err)
	}
	return result.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var n models.Notification
	var id pgtype.UUID
	err := row.Scan(
		&id, &n.UserID, &n.Kind, &n.Category, &n.Message, &n.Meta,
		&n.Read, &n.CreatedAt, &n.ExpiresAt,
	)
	if err != nil {
		return models.Notification{}, err
	}
	n.ID = id.Bytes
	return n, nil
}
