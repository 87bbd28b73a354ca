package db

import (
	"context"
	"fmt"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateSubscription(ctx context.Context, pool *pgxpool.Pool, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, name, amount, billing_cycle, next_billing_date, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := pool.Exec(ctx, query, sub.ID, sub.UserID, sub.Name, sub.Amount, sub.BillingCycle, sub.NextBillingDate, sub.Active, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetActiveSubscriptions returns active subscriptions only. Cancelled ones
// are excluded from every read and aggregate.
func GetActiveSubscriptions(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Subscription, error) {
	query := `
		SELECT id, user_id, name, amount, billing_cycle, next_billing_date, active, created_at
		FROM subscriptions
		WHERE user_id = $1 AND active = TRUE
		ORDER BY created_at
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		err := rows.Scan(&sub.ID, &sub.UserID, &sub.Name, &sub.Amount, &sub.BillingCycle, &sub.NextBillingDate, &sub.Active, &sub.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeactivateSubscription soft-deletes: the row stays, active flips false.
func DeactivateSubscription(ctx context.Context, pool *pgxpool.Pool, userID, subscriptionID string) error {
	query := `UPDATE subscriptions SET active = FALSE WHERE id = $1 AND user_id = $2 AND active = TRUE`
	cmd, err := pool.Exec(ctx, query, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
