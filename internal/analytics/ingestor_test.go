package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/model"
)

// recordingRepo captures logged records in memory.
type recordingRepo struct {
	mu   sync.Mutex
	logs []*model.RequestLog
}

func (r *recordingRepo) Conversations() store.ConversationRepository { return nil }
func (r *recordingRepo) Messages() store.MessageRepository           { return nil }
func (r *recordingRepo) Requests() store.RequestRepository           { return (*recordingRequests)(r) }
func (r *recordingRepo) WithTx(ctx context.Context, fn func(store.Repository) error) error {
	return fn(r)
}
func (r *recordingRepo) Close() error { return nil }

type recordingRequests recordingRepo

func (r *recordingRequests) Log(ctx context.Context, log *model.RequestLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

func (r *recordingRequests) GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error) {
	return nil, nil
}

func (r *recordingRequests) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	return nil, nil
}

func (r *recordingRequests) GetModelUsage(ctx context.Context, days int) ([]model.ModelUsage, error) {
	return nil, nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

func TestIngestor_FlushesOnStop(t *testing.T) {
	repo := &recordingRepo{}
	ing := NewIngestor(zap.NewNop(), repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ing.Start(ctx)

	for i := 0; i < 5; i++ {
		ing.Log(&model.RequestLog{ID: "req", ProviderID: "groq"})
	}
	ing.Stop()

	require.Eventually(t, func() bool {
		return repo.count() == 5
	}, time.Second, 10*time.Millisecond)
}

func TestIngestor_LogAfterStopIsDropped(t *testing.T) {
	repo := &recordingRepo{}
	ing := NewIngestor(zap.NewNop(), repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ing.Start(ctx)

	ing.Log(&model.RequestLog{ID: "before"})
	ing.Stop()
	ing.Stop()

	assert.NotPanics(t, func() {
		ing.Log(&model.RequestLog{ID: "after"})
	})

	require.Eventually(t, func() bool {
		return repo.count() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestIngestor_FlushesFullBatch(t *testing.T) {
	repo := &recordingRepo{}
	ing := NewIngestor(zap.NewNop(), repo).(*ingestor)
	ing.batchSize = 3

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ing.Start(ctx)

	for i := 0; i < 3; i++ {
		ing.Log(&model.RequestLog{ID: "req"})
	}

	// A full batch flushes without waiting for the ticker.
	assert.Eventually(t, func() bool {
		return repo.count() == 3
	}, time.Second, 10*time.Millisecond)
}
