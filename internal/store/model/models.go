package model

import (
	"database/sql"
	"time"
)

// Conversation groups the messages of one chat thread.
type Conversation struct {
	ID        string         `db:"id" json:"id"`
	Title     string         `db:"title" json:"title"`
	UserID    sql.NullString `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// Message is one turn in a conversation, user or assistant.
type Message struct {
	ID             string         `db:"id" json:"id"`
	ConversationID string         `db:"conversation_id" json:"conversation_id"`
	Role           string         `db:"role" json:"role"`
	Content        string         `db:"content" json:"content"`
	ModelUsed      sql.NullString `db:"model_used" json:"model_used,omitempty"`
	ProviderUsed   sql.NullString `db:"provider_used" json:"provider_used,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// RequestLog captures one completed (or failed) dispatch for analytics.
type RequestLog struct {
	ID               string        `db:"id" json:"id"`
	ConversationID   sql.NullString `db:"conversation_id" json:"conversation_id,omitempty"`
	ProviderID       string        `db:"provider_id" json:"provider_id"`
	ModelID          string        `db:"model_id" json:"model_id"`
	RequestedModelID string        `db:"requested_model_id" json:"requested_model_id"`
	PromptTokens     int           `db:"prompt_tokens" json:"prompt_tokens"`
	CompletionTokens int           `db:"completion_tokens" json:"completion_tokens"`
	TotalTokens      int           `db:"total_tokens" json:"total_tokens"`
	LatencyMS        int64         `db:"latency_ms" json:"latency_ms"`
	StatusCode       int           `db:"status_code" json:"status_code"`
	ErrorKind        string        `db:"error_kind" json:"error_kind,omitempty"`
	UsedRAG          bool          `db:"used_rag" json:"used_rag"`
	ComplexityScore  sql.NullInt64 `db:"complexity_score" json:"complexity_score,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}

// DailyStats is one day's aggregated traffic.
type DailyStats struct {
	Date           string  `db:"date" json:"date"`
	TotalRequests  int     `db:"total_requests" json:"total_requests"`
	TotalTokens    int     `db:"total_tokens" json:"total_tokens"`
	AverageLatency float64 `db:"avg_latency" json:"avg_latency"`
	ErrorCount     int     `db:"error_count" json:"error_count"`
}

// ModelUsage is the per-model request breakdown used by the analytics
// dashboard endpoints.
type ModelUsage struct {
	ModelID      string `db:"model_id" json:"model_id"`
	ProviderID   string `db:"provider_id" json:"provider_id"`
	RequestCount int    `db:"request_count" json:"request_count"`
	TotalTokens  int    `db:"total_tokens" json:"total_tokens"`
}
