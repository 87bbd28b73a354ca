package db

import (
	"context"
	"fmt"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

func CreateIncome(ctx context.Context, pool *pgxpool.Pool, inc *models.Income) error {
	query := `
		INSERT INTO incomes (id, user_id, source, amount, frequency, next_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := pool.Exec(ctx, query, inc.ID, inc.UserID, inc.Source, inc.Amount, inc.Frequency, inc.NextDate, inc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

func GetIncomesByUser(ctx context.Context, pool *pgxpool.Pool, userID string) ([]models.Income, error) {
	query := `
		SELECT id, user_id, source, amount, frequency, next_date, created_at
		FROM incomes
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query incomes: %w", err)
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var inc models.Income
		err := rows.Scan(&inc.ID, &inc.UserID, &inc.Source, &inc.Amount, &inc.Frequency, &inc.NextDate, &inc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		incomes = append(incomes, inc)
	}
	return incomes, rows.Err()
}

func DeleteIncome(ctx context.Context, pool *pgxpool.Pool, userID, incomeID string) error {
	query := `DELETE FROM incomes WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, incomeID, userID)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
