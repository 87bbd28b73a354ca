package chat

import (
	"context"
	"fmt"
	"log"
	"time"

	"finote-server/src/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// contextWindow bounds the financial summary to a recency slice; it is
	// deliberately not the all-time dashboard totals.
	contextWindow = 20
	titleLimit    = 50

	systemPrompt = "You are Finote AI, a helpful personal finance assistant. " +
		"Help users manage their finances, understand spending patterns, and make better financial decisions. " +
		"Be concise, supportive, and actionable. "

	fallbackReply = "I'm here to help with your finances! Ask me about your spending, savings goals, or budgeting tips."
)

type ConversationStore interface {
	Get(ctx context.Context, userID, conversationID string) (*models.Conversation, error)
	Upsert(ctx context.Context, conv *models.Conversation) error
}

type TransactionReader interface {
	RecentByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
}

type Replier interface {
	Reply(ctx context.Context, systemPrompt, message string) (string, error)
}

// Service maintains per-user chat threads and mediates calls to the AI
// collaborator. A collaborator failure never reaches the caller: the static
// fallback reply is substituted and both turns are still persisted.
type Service struct {
	conversations ConversationStore
	transactions  TransactionReader
	assistant     Replier
	now           func() time.Time
}

func NewService(conversations ConversationStore, transactions TransactionReader, assistant Replier) *Service {
	return &Service{
		conversations: conversations,
		transactions:  transactions,
		assistant:     assistant,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SendMessage appends a user turn to the resolved conversation, obtains a
// reply, appends the assistant turn, and persists the whole thread. A given
// conversation id that does not resolve for this user is a not-found error.
func (s *Service) SendMessage(ctx context.Context, userID, message string, conversationID *string) (*models.ChatReply, error) {
	now := s.now()

	var conv *models.Conversation
	if conversationID != nil && *conversationID != "" {
		existing, err := s.conversations.Get(ctx, userID, *conversationID)
		if err != nil {
			return nil, err
		}
		conv = existing
	} else {
		conv = &models.Conversation{
			ID:        uuid.NewString(),
			UserID:    userID,
			Messages:  []models.Message{},
			CreatedAt: now,
		}
	}

	conv.Messages = append(conv.Messages, models.Message{
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: now,
	})

	summary, err := s.financialContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply, err := s.assistant.Reply(ctx, systemPrompt+summary, message)
	if err != nil {
		log.Printf("ERROR: AI reply failed for user %s: %v", userID, err)
		reply = fallbackReply
	}

	conv.Messages = append(conv.Messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
	})

	// Title is frozen after the first exchange.
	if len(conv.Messages) <= 2 {
		conv.Title = truncate(message, titleLimit)
	}
	conv.UpdatedAt = s.now()

	if err := s.conversations.Upsert(ctx, conv); err != nil {
		return nil, err
	}

	return &models.ChatReply{Reply: reply, ConversationID: conv.ID}, nil
}

// financialContext summarizes the user's most recent transactions into the
// string handed to the assistant alongside the system prompt.
func (s *Service) financialContext(ctx context.Context, userID string) (string, error) {
	transactions, err := s.transactions.RecentByUser(ctx, userID, contextWindow)
	if err != nil {
		return "", fmt.Errorf("load recent transactions: %w", err)
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.TransactionIncome:
			totalIncome = totalIncome.Add(amount)
		case models.TransactionExpense:
			totalExpenses = totalExpenses.Add(amount)
		}
	}

	return fmt.Sprintf("User's recent financial summary: Total income: $%.2f, Total expenses: $%.2f. Recent transactions: %d",
		totalIncome.InexactFloat64(), totalExpenses.InexactFloat64(), len(transactions)), nil
}

// truncate counts characters, not bytes, so a multi-byte title is never cut
// mid-rune.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
