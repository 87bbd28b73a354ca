package db

import (
	"context"
	"fmt"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateTransaction(ctx context.Context, pool *pgxpool.Pool, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := pool.Exec(ctx, query, t.ID, t.UserID, t.Type, t.Amount, t.Category, t.Description, t.Date, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func GetTransactionsByUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, date, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC
	`
	return queryTransactions(ctx, pool, query, userID)
}

func GetRecentTransactions(ctx context.Context, pool *pgxpool.Pool, userID string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, date, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	return queryTransactions(ctx, pool, query, userID, limit)
}

func queryTransactions(ctx context.Context, pool *pgxpool.Pool, query string, args ...interface{}) ([]models.Transaction, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Description, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func DeleteTransaction(ctx context.Context, pool *pgxpool.Pool, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// TransactionReader adapts the transaction queries to the bounded recency
// window the chat service builds its financial context from.
type TransactionReader struct {
	Pool *pgxpool.Pool
}

func (r TransactionReader) RecentByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return GetRecentTransactions(ctx, r.Pool, userID, limit)
}
