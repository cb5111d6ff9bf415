package analytics

import (
	"context"

	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/model"
)

type Service interface {
	GetUsageOverview(ctx context.Context, days int) ([]model.DailyStats, error)
	GetModelUsage(ctx context.Context, days int) ([]model.ModelUsage, error)
	GetRecentRequests(ctx context.Context, limit int) ([]model.RequestLog, error)
}

type service struct {
	repo store.Repository
}

func NewService(repo store.Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetUsageOverview(ctx context.Context, days int) ([]model.DailyStats, error) {
	if days <= 0 {
		days = 7 // default to last week
	}
	return s.repo.Requests().GetDailyStats(ctx, days)
}

func (s *service) GetModelUsage(ctx context.Context, days int) ([]model.ModelUsage, error) {
	if days <= 0 {
		days = 7
	}
	return s.repo.Requests().GetModelUsage(ctx, days)
}

func (s *service) GetRecentRequests(ctx context.Context, limit int) ([]model.RequestLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.repo.Requests().GetRecent(ctx, limit)
}
