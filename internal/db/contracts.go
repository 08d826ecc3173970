package db

import (
	"context"
	"fmt"

	"contract-service/internal/models"
)

// ListActiveContracts returns every contract whose status is not terminal
// for expiration purposes (expired, terminated).
func (d *DB) ListActiveContracts(ctx context.Context) ([]models.Contract, error) {
	query := `
        SELECT id, title, status, end_date, notification_days, owner_id, created_at, updated_at
        FROM contracts
        WHERE status NOT IN ('expired', 'terminated')`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active contracts: %w", err)
	}
	defer rows.Close()

	var contracts []models.Contract
	for rows.Next() {
		var c models.Contract
		err := rows.Scan(
			&c.ID, &c.Title, &c.Status, &c.EndDate,
			&c.NotificationDays, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

// MarkContractExpired transitions a contract to expired. The update is
// guarded on non-terminal status, so re-applying it is a no-op.
func (d *DB) MarkContractExpired(ctx context.Context, contractID int64) error {
	query := `
        UPDATE contracts
        SET status = 'expired', updated_at = NOW()
        WHERE id = $1 AND status NOT IN ('expired', 'terminated')`
	_, err := d.Pool.Exec(ctx, query, contractID)
	if err != nil {
		return fmt.Errorf("failed to mark contract %d expired: %w", contractID, err)
	}
	return nil
}
