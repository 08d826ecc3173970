package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetUserEmail resolves the email address for a user. The users table is
// owned by the CRUD layer; this service only reads the address for the email
// channel.
func (d *DB) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	var email string
	query := `SELECT email FROM users WHERE id = $1`
	err := d.Pool.QueryRow(ctx, query, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get email for user %d: %w", userID, err)
	}
	return email, nil
}
