package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/model"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	repo, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newConversation(t *testing.T, repo store.Repository, title string) *model.Conversation {
	t.Helper()
	conv := &model.Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Conversations().Create(context.Background(), conv))
	return conv
}

func TestConversationLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	conv := newConversation(t, repo, "first chat")

	got, err := repo.Conversations().Get(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "first chat", got.Title)

	list, err := repo.Conversations().List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Conversations().Delete(ctx, conv.ID))
	_, err = repo.Conversations().Get(ctx, conv.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMessageAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	conv := newConversation(t, repo, "thread")

	first := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           "user",
		Content:        "hello",
		CreatedAt:      time.Now(),
	}
	second := &model.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           "assistant",
		Content:        "hi there",
		ModelUsed:      sql.NullString{String: "llama-3.1-8b-instant", Valid: true},
		ProviderUsed:   sql.NullString{String: "groq", Valid: true},
		CreatedAt:      time.Now().Add(time.Second),
	}
	require.NoError(t, repo.Messages().Append(ctx, first))
	require.NoError(t, repo.Messages().Append(ctx, second))

	msgs, err := repo.Messages().ListByConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "llama-3.1-8b-instant", msgs[1].ModelUsed.String)
}

func TestRequestLogAndStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		log := &model.RequestLog{
			ID:               uuid.NewString(),
			ProviderID:       "groq",
			ModelID:          "llama-3.1-8b-instant",
			RequestedModelID: "llama-3.1-8b-instant",
			PromptTokens:     10,
			CompletionTokens: 20,
			TotalTokens:      30,
			LatencyMS:        100,
			StatusCode:       200,
			CreatedAt:        time.Now(),
		}
		require.NoError(t, repo.Requests().Log(ctx, log))
	}
	failed := &model.RequestLog{
		ID:         uuid.NewString(),
		ProviderID: "openai",
		ModelID:    "gpt-4o",
		StatusCode: 502,
		ErrorKind:  "provider_error",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.Requests().Log(ctx, failed))

	recent, err := repo.Requests().GetRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	stats, err := repo.Requests().GetDailyStats(ctx, 7)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 4, stats[0].TotalRequests)
	assert.Equal(t, 90, stats[0].TotalTokens)
	assert.Equal(t, 1, stats[0].ErrorCount)

	usage, err := repo.Requests().GetModelUsage(ctx, 7)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "llama-3.1-8b-instant", usage[0].ModelID)
	assert.Equal(t, 3, usage[0].RequestCount)
}

func TestWithTxRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.WithTx(ctx, func(txRepo store.Repository) error {
		conv := &model.Conversation{
			ID:        uuid.NewString(),
			Title:     "doomed",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := txRepo.Conversations().Create(ctx, conv); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	list, err := repo.Conversations().List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
