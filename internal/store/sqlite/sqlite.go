package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB // Required for starting new transactions
	executor DB       // Used for actual queries (can be *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txRepo := &SqliteRepository{
		db:       r.db,
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		// attempt rollback, but prioritize original error
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) Conversations() store.ConversationRepository {
	return &conversationRepo{db: r.executor}
}

func (r *SqliteRepository) Messages() store.MessageRepository {
	return &messageRepo{db: r.executor}
}

func (r *SqliteRepository) Requests() store.RequestRepository {
	return &requestRepo{db: r.executor}
}

type conversationRepo struct {
	db DB
}

func (r *conversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	query := `
	INSERT INTO conversations (id, title, user_id, created_at, updated_at)
	VALUES (:id, :title, :user_id, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, conv)
	return err
}

func (r *conversationRepo) Get(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := r.db.GetContext(ctx, &conv, `SELECT * FROM conversations WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) List(ctx context.Context, limit int) ([]model.Conversation, error) {
	var convs []model.Conversation
	query := `SELECT * FROM conversations ORDER BY updated_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &convs, query, limit)
	return convs, err
}

func (r *conversationRepo) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE conversations SET updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

func (r *conversationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE conversation_id = ?`, id); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	return err
}

type messageRepo struct {
	db DB
}

func (r *messageRepo) Append(ctx context.Context, msg *model.Message) error {
	query := `
	INSERT INTO messages (id, conversation_id, role, content, model_used, provider_used, created_at)
	VALUES (:id, :conversation_id, :role, :content, :model_used, :provider_used, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, msg)
	return err
}

func (r *messageRepo) ListByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	var msgs []model.Message
	query := `SELECT * FROM messages WHERE conversation_id = ? ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &msgs, query, conversationID)
	return msgs, err
}

type requestRepo struct {
	db DB
}

func (r *requestRepo) Log(ctx context.Context, log *model.RequestLog) error {
	query := `
	INSERT INTO request_logs (
		id, conversation_id, provider_id, model_id, requested_model_id,
		prompt_tokens, completion_tokens, total_tokens,
		latency_ms, status_code, error_kind, used_rag, complexity_score, created_at
	) VALUES (
		:id, :conversation_id, :provider_id, :model_id, :requested_model_id,
		:prompt_tokens, :completion_tokens, :total_tokens,
		:latency_ms, :status_code, :error_kind, :used_rag, :complexity_score, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, log)
	return err
}

func (r *requestRepo) GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error) {
	var logs []model.RequestLog
	query := `SELECT * FROM request_logs ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &logs, query, limit)
	return logs, err
}

func (r *requestRepo) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	var stats []model.DailyStats
	query := `
		SELECT
			DATE(created_at) as date,
			COUNT(*) as total_requests,
			SUM(total_tokens) as total_tokens,
			AVG(latency_ms) as avg_latency,
			SUM(CASE WHEN error_kind != '' THEN 1 ELSE 0 END) as error_count
		FROM request_logs
		WHERE created_at >= DATE('now', ?)
		GROUP BY date
		ORDER BY date DESC
	`
	// SQLite date offset format is '-7 days'
	err := r.db.SelectContext(ctx, &stats, query, fmt.Sprintf("-%d days", days))
	return stats, err
}

func (r *requestRepo) GetModelUsage(ctx context.Context, days int) ([]model.ModelUsage, error) {
	var usage []model.ModelUsage
	query := `
		SELECT
			model_id,
			provider_id,
			COUNT(*) as request_count,
			SUM(total_tokens) as total_tokens
		FROM request_logs
		WHERE created_at >= DATE('now', ?)
		GROUP BY model_id, provider_id
		ORDER BY request_count DESC
	`
	err := r.db.SelectContext(ctx, &usage, query, fmt.Sprintf("-%d days", days))
	return usage, err
}
