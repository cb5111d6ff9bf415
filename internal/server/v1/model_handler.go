package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/store/cache"
	"github.com/nexusai/router-api/pkg/api"
)

const (
	catalogCacheKey = "models:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// ModelLister is the catalog slice of the provider router.
type ModelLister interface {
	ListModels(ctx context.Context) []api.Model
}

type ModelHandler struct {
	logger *zap.Logger
	lister ModelLister
	cache  cache.CacheService
}

func NewModelHandler(logger *zap.Logger, lister ModelLister, c cache.CacheService) *ModelHandler {
	return &ModelHandler{logger: logger, lister: lister, cache: c}
}

// ListModels serves the aggregated catalog, cached briefly so bursts of
// catalog reads do not fan out to every provider's listing endpoint.
func (h *ModelHandler) ListModels(c *gin.Context) {
	ctx := c.Request.Context()

	var models []api.Model
	if h.cache != nil {
		if err := h.cache.Get(ctx, catalogCacheKey, &models); err == nil {
			c.JSON(http.StatusOK, gin.H{"models": models, "count": len(models), "cached": true})
			return
		}
	}

	models = h.lister.ListModels(ctx)

	if h.cache != nil {
		if err := h.cache.Set(ctx, catalogCacheKey, models, catalogCacheTTL); err != nil {
			h.logger.Warn("failed to cache model catalog", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"models": models, "count": len(models), "cached": false})
}
