package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"contract-service/internal/models"
)

func (d *DB) GetPreference(ctx context.Context, userID int64, kind models.EventKind) (models.PreferenceRecord, error) {
	query := `
        SELECT user_id, kind, email, in_app, system, created_at, updated_at
        FROM notification_preferences
        WHERE user_id = $1 AND kind = $2`
	var p models.PreferenceRecord
	err := d.Pool.QueryRow(ctx, query, userID, kind).Scan(
		&p.UserID, &p.Kind, &p.Email, &p.InApp, &p.System, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PreferenceRecord{}, ErrNotFound
		}
		return models.PreferenceRecord{}, fmt.Errorf("failed to get preference for user %d kind %s: %w", userID, kind, err)
	}
	return p, nil
}

func (d *DB) ListPreferencesByUser(ctx context.Context, userID int64) ([]models.PreferenceRecord, error) {
	query := `
        SELECT user_id, kind, email, in_app, system, created_at, updated_at
        FROM notification_preferences
        WHERE user_id = $1
        ORDER BY kind`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences for user %d: %w", userID, err)
	}
	defer rows.Close()

	var prefs []models.PreferenceRecord
	for rows.Next() {
		var p models.PreferenceRecord
		err := rows.Scan(&p.UserID, &p.Kind, &p.Email, &p.InApp, &p.System, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

// UpsertPreference creates the record or overwrites the channel flags of an
// existing one.
func (d *DB) UpsertPreference(ctx context.Context, p models.PreferenceRecord) error {
	query := `
        INSERT INTO notification_preferences (user_id, kind, email, in_app, system, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        ON CONFLICT (user_id, kind)
        DO UPDATE SET email = $3, in_app = $4, system = $5, updated_at = NOW()`
	_, err := d.Pool.Exec(ctx, query, p.UserID, p.Kind, p.Email, p.InApp, p.System)
	if err != nil {
		return fmt.Errorf("failed to upsert preference for user %d kind %s: %w", p.UserID, p.Kind, err)
	}
	return nil
}
