package analytics

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/model"
)

// Ingestor handles the asynchronous persistence of dispatch records so the
// chat path never blocks on the database.
type Ingestor interface {
	Log(log *model.RequestLog)
	Start(ctx context.Context)
	Stop()
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	logChan   chan *model.RequestLog
	quit      chan struct{}
	stopOnce  sync.Once
	batchSize int
	flushTime time.Duration
}

func NewIngestor(logger *zap.Logger, repo store.Repository) Ingestor {
	return &ingestor{
		logger:    logger,
		repo:      repo,
		logChan:   make(chan *model.RequestLog, 10000),
		quit:      make(chan struct{}),
		batchSize: 50,
		flushTime: 5 * time.Second,
	}
}

// Log enqueues without blocking. A full buffer drops the record; analytics
// loss is preferable to backpressure on the request path. Records logged
// after Stop are dropped silently.
func (i *ingestor) Log(log *model.RequestLog) {
	select {
	case <-i.quit:
		return
	default:
	}
	select {
	case i.logChan <- log:
	default:
		i.logger.Warn("analytics buffer full, dropping record", zap.String("request_id", log.ID))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	go i.worker(ctx)
}

// Stop signals the worker to drain and flush. Safe to call more than once,
// and Log stays safe to call afterwards.
func (i *ingestor) Stop() {
	i.stopOnce.Do(func() { close(i.quit) })
}

func (i *ingestor) worker(ctx context.Context) {
	batch := make([]*model.RequestLog, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, log := range batch {
			if err := i.repo.Requests().Log(context.Background(), log); err != nil {
				i.logger.Error("failed to persist dispatch record", zap.String("id", log.ID), zap.Error(err))
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case log := <-i.logChan:
			batch = append(batch, log)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-i.quit:
			// Drain whatever was enqueued before the stop signal.
			for {
				select {
				case log := <-i.logChan:
					batch = append(batch, log)
				default:
					flush()
					return
				}
			}
		case <-ctx.Done():
			flush()
			return
		}
	}
}
