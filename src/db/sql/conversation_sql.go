package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationStore is the chat service's view of conversation persistence.
type ConversationStore struct {
	Pool *pgxpool.Pool
}

func (s ConversationStore) Get(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM conversations
		WHERE id = $1 AND user_id = $2
	`
	var conv models.Conversation
	var raw []byte
	err := s.Pool.QueryRow(ctx, query, conversationID, userID).Scan(
		&conv.ID,
		&conv.UserID,
		&conv.Title,
		&raw,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	if err := json.Unmarshal(raw, &conv.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return &conv, nil
}

// Upsert writes the full message sequence. The ownership predicate on update
// keeps a colliding id from touching another user's thread.
func (s ConversationStore) Upsert(ctx context.Context, conv *models.Conversation) error {
	raw, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	query := `
		INSERT INTO conversations (id, user_id, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, messages = EXCLUDED.messages, updated_at = EXCLUDED.updated_at
		WHERE conversations.user_id = EXCLUDED.user_id
	`
	_, err = s.Pool.Exec(ctx, query, conv.ID, conv.UserID, conv.Title, raw, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert conversation: %w", err)
	}
	return nil
}

func GetConversationsByUser(ctx context.Context, pool *pgxpool.Pool, userID string, limit int) ([]models.Conversation, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`
	rows, err := pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var convs []models.Conversation
	for rows.Next() {
		var conv models.Conversation
		var raw []byte
		err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &raw, &conv.CreatedAt, &conv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		if err := json.Unmarshal(raw, &conv.Messages); err != nil {
			return nil, fmt.Errorf("decode messages: %w", err)
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}
