package store

import (
	"context"

	"github.com/nexusai/router-api/internal/store/model"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Conversations() ConversationRepository
	Messages() MessageRepository
	Requests() RequestRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

type ConversationRepository interface {
	// Create starts a new conversation thread.
	Create(ctx context.Context, conv *model.Conversation) error
	// Get returns a single conversation by ID.
	Get(ctx context.Context, id string) (*model.Conversation, error)
	// List returns the most recently updated conversations.
	List(ctx context.Context, limit int) ([]model.Conversation, error)
	// Touch bumps the updated_at timestamp after a new message lands.
	Touch(ctx context.Context, id string) error
	// Delete removes a conversation and its messages.
	Delete(ctx context.Context, id string) error
}

type MessageRepository interface {
	// Append stores one message at the end of a conversation.
	Append(ctx context.Context, msg *model.Message) error
	// ListByConversation returns a conversation's messages in order.
	ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
}

type RequestRepository interface {
	// Log stores a completed dispatch record.
	Log(ctx context.Context, log *model.RequestLog) error
	// GetRecent returns the last N dispatch records.
	GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error)
	// GetDailyStats returns aggregated stats grouped by day.
	GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error)
	// GetModelUsage returns per-model request counts over a day range.
	GetModelUsage(ctx context.Context, days int) ([]model.ModelUsage, error)
}
