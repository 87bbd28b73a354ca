package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	store "finote-server/src/db"
	"finote-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversationStore struct {
	conversations map[string]*models.Conversation
	upserted      *models.Conversation
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{conversations: make(map[string]*models.Conversation)}
}

func (f *fakeConversationStore) Get(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	conv, ok := f.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return nil, store.ErrNotFound
	}
	clone := *conv
	clone.Messages = append([]models.Message(nil), conv.Messages...)
	return &clone, nil
}

func (f *fakeConversationStore) Upsert(ctx context.Context, conv *models.Conversation) error {
	f.upserted = conv
	f.conversations[conv.ID] = conv
	return nil
}

type fakeTransactionReader struct {
	transactions []models.Transaction
}

func (f fakeTransactionReader) RecentByUser(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return f.transactions, nil
}

type fakeReplier struct {
	reply        string
	err          error
	systemPrompt string
}

func (f *fakeReplier) Reply(ctx context.Context, systemPrompt, message string) (string, error) {
	f.systemPrompt = systemPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(conversations *fakeConversationStore, replier *fakeReplier, transactions []models.Transaction) *Service {
	svc := NewService(conversations, fakeTransactionReader{transactions: transactions}, replier)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestSendMessageCreatesConversation(t *testing.T) {
	conversations := newFakeConversationStore()
	replier := &fakeReplier{reply: "Here is some advice."}
	svc := newTestService(conversations, replier, nil)

	reply, err := svc.SendMessage(context.Background(), "u1", "How am I doing?", nil)

	require.NoError(t, err)
	assert.Equal(t, "Here is some advice.", reply.Reply)
	assert.NotEmpty(t, reply.ConversationID)

	saved := conversations.upserted
	require.NotNil(t, saved)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, "How am I doing?", saved.Title)
	require.Len(t, saved.Messages, 2)
	assert.Equal(t, models.RoleUser, saved.Messages[0].Role)
	assert.Equal(t, "How am I doing?", saved.Messages[0].Content)
	assert.Equal(t, models.RoleAssistant, saved.Messages[1].Role)
	assert.Equal(t, "Here is some advice.", saved.Messages[1].Content)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestSendMessageFallbackOnAssistantFailure(t *testing.T) {
	conversations := newFakeConversationStore()
	replier := &fakeReplier{err: errors.New("upstream unreachable")}
	svc := newTestService(conversations, replier, nil)

	reply, err := svc.SendMessage(context.Background(), "u1", "help", nil)

	// The failure never reaches the caller.
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply.Reply)

	// Both turns are still persisted, with the fallback as the assistant turn.
	saved := conversations.upserted
	require.NotNil(t, saved)
	require.Len(t, saved.Messages, 2)
	assert.Equal(t, fallbackReply, saved.Messages[1].Content)
}

func TestSendMessageUnknownConversation(t *testing.T) {
	conversations := newFakeConversationStore()
	svc := newTestService(conversations, &fakeReplier{reply: "hi"}, nil)

	unknown := "does-not-exist"
	_, err := svc.SendMessage(context.Background(), "u1", "hello", &unknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, conversations.upserted)
}

func TestSendMessageOtherUsersConversation(t *testing.T) {
	conversations := newFakeConversationStore()
	conversations.conversations["c1"] = &models.Conversation{ID: "c1", UserID: "someone-else", Title: "theirs"}
	svc := newTestService(conversations, &fakeReplier{reply: "hi"}, nil)

	conversationID := "c1"
	_, err := svc.SendMessage(context.Background(), "u1", "hello", &conversationID)

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSendMessageAppendsToExistingConversation(t *testing.T) {
	conversations := newFakeConversationStore()
	conversations.conversations["c1"] = &models.Conversation{
		ID:     "c1",
		UserID: "u1",
		Title:  "original title",
		Messages: []models.Message{
			{Role: models.RoleUser, Content: "first"},
			{Role: models.RoleAssistant, Content: "second"},
		},
	}
	svc := newTestService(conversations, &fakeReplier{reply: "third"}, nil)

	conversationID := "c1"
	reply, err := svc.SendMessage(context.Background(), "u1", "another question", &conversationID)

	require.NoError(t, err)
	assert.Equal(t, "c1", reply.ConversationID)

	saved := conversations.upserted
	require.Len(t, saved.Messages, 4)
	// The title was set on first creation and stays frozen.
	assert.Equal(t, "original title", saved.Title)
}

func TestTitleTruncatedToFiftyCharacters(t *testing.T) {
	conversations := newFakeConversationStore()
	svc := newTestService(conversations, &fakeReplier{reply: "ok"}, nil)

	long := strings.Repeat("x", 80)
	_, err := svc.SendMessage(context.Background(), "u1", long, nil)

	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 50), conversations.upserted.Title)
}

func TestTitleTruncationCountsRunes(t *testing.T) {
	conversations := newFakeConversationStore()
	svc := newTestService(conversations, &fakeReplier{reply: "ok"}, nil)

	// 20 characters but 60 bytes; well under the character limit.
	short := strings.Repeat("€", 20)
	_, err := svc.SendMessage(context.Background(), "u1", short, nil)
	require.NoError(t, err)
	assert.Equal(t, short, conversations.upserted.Title)

	// 80 characters; the cut must land on a rune boundary.
	long := strings.Repeat("€", 80)
	_, err = svc.SendMessage(context.Background(), "u1", long, nil)
	require.NoError(t, err)
	title := conversations.upserted.Title
	assert.Equal(t, strings.Repeat("€", 50), title)
	assert.True(t, utf8.ValidString(title))
}

func TestFinancialContextWindow(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{Type: models.TransactionIncome, Amount: 100.50, Date: day},
		{Type: models.TransactionExpense, Amount: 25.25, Date: day},
	}
	replier := &fakeReplier{reply: "ok"}
	svc := newTestService(newFakeConversationStore(), replier, transactions)

	_, err := svc.SendMessage(context.Background(), "u1", "how much did I spend?", nil)

	require.NoError(t, err)
	assert.Contains(t, replier.systemPrompt, "You are Finote AI")
	assert.Contains(t, replier.systemPrompt,
		"Total income: $100.50, Total expenses: $25.25. Recent transactions: 2")
}
