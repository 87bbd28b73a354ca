package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetUserByUID(ctx context.Context, pool *pgxpool.Pool, uid string) (*models.User, error) {
	query := `
		SELECT id, uid, email, name, created_at
		FROM users
		WHERE uid = $1
	`
	var user models.User
	err := pool.QueryRow(ctx, query, uid).Scan(
		&user.ID,
		&user.UID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &user, nil
}

func CreateUser(ctx context.Context, pool *pgxpool.Pool, uid, email string) (*models.User, error) {
	user := models.User{
		ID:        uuid.NewString(),
		UID:       uid,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	query := `
		INSERT INTO users (id, uid, email, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := pool.Exec(ctx, query, user.ID, user.UID, user.Email, user.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}
