package db

import (
	"context"
	"fmt"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetAlertsByUser(ctx context.Context, pool *pgxpool.Pool, userID string, limit int) ([]models.Alert, error) {
	query := `
		SELECT id, user_id, type, message, is_read, created_at
		FROM alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Message, &a.IsRead, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func MarkAlertRead(ctx context.Context, pool *pgxpool.Pool, userID, alertID string) error {
	query := `UPDATE alerts SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, alertID, userID)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
