package router

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/config"
	"github.com/nexusai/router-api/internal/llm"
	"github.com/nexusai/router-api/internal/modeldata"
	"github.com/nexusai/router-api/pkg/api"
)

// registration is the runtime state of one configured provider: the adapter,
// its sliding-window limiter, and a cached catalog snapshot.
type registration struct {
	config   config.ProviderConfig
	provider llm.Provider
	limiter  *windowLimiter

	mu      sync.RWMutex
	enabled bool
	models  []api.Model
	lastErr string
}

func (r *registration) isEnabled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled
}

func (r *registration) snapshot() []api.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.models
}

func (r *registration) setModels(models []api.Model) {
	r.mu.Lock()
	r.models = models
	r.mu.Unlock()
}

func (r *registration) setError(err error) {
	r.mu.Lock()
	if err != nil {
		r.lastErr = err.Error()
	} else {
		r.lastErr = ""
	}
	r.mu.Unlock()
}

func (r *registration) serves(modelID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.models {
		if m.ID == modelID {
			return true
		}
	}
	return false
}

// Router owns the configured provider set, aggregates model catalogs, and
// dispatches completion requests with rate-limit-aware fallback.
type Router struct {
	logger           *zap.Logger
	defaultChatModel string
	registry         []*registration
}

func New(cfg *config.Config, logger *zap.Logger) *Router {
	rt := &Router{
		logger:           logger,
		defaultChatModel: cfg.Router.DefaultChatModel,
	}
	for _, pc := range cfg.Providers {
		rt.registry = append(rt.registry, &registration{
			config:  pc,
			limiter: newWindowLimiter(pc.RateLimit),
		})
	}
	sort.SliceStable(rt.registry, func(i, j int) bool {
		return rt.registry[i].config.Priority < rt.registry[j].config.Priority
	})
	return rt
}

// Bootstrap constructs and probes every configured provider. A provider
// with no credential, an unknown type, or a failed probe is left disabled;
// bootstrap itself never fails. Zero enabled providers is a valid state.
func (rt *Router) Bootstrap(ctx context.Context) {
	for _, reg := range rt.registry {
		if !reg.config.Enabled {
			continue
		}
		// Keyless providers (local daemons) skip the credential gate.
		if reg.config.APIKey == "" && reg.config.Type != "ollama" {
			rt.logger.Info("provider disabled, no credential configured",
				zap.String("provider", reg.config.ID))
			continue
		}

		provider, err := llm.New(reg.config)
		if err != nil {
			rt.logger.Warn("provider construction failed",
				zap.String("provider", reg.config.ID), zap.Error(err))
			reg.setError(err)
			continue
		}

		if err := provider.Probe(ctx); err != nil {
			rt.logger.Warn("provider probe failed, disabling",
				zap.String("provider", reg.config.ID), zap.Error(err))
			reg.setError(err)
			continue
		}

		reg.mu.Lock()
		reg.provider = provider
		reg.enabled = true
		reg.mu.Unlock()

		rt.refreshCatalog(ctx, reg)

		rt.logger.Info("provider enabled",
			zap.String("provider", reg.config.ID),
			zap.Int("priority", reg.config.Priority),
			zap.Int("rate_limit", reg.config.RateLimit),
			zap.Int("models", len(reg.snapshot())))
	}
}

// refreshCatalog pulls the live model list for one provider, falling back
// to the static catalog entries when the fetch fails.
func (rt *Router) refreshCatalog(ctx context.Context, reg *registration) {
	models, err := reg.provider.Models(ctx)
	if err != nil {
		rt.logger.Warn("model listing failed, using static catalog",
			zap.String("provider", reg.config.ID), zap.Error(err))
		models = modeldata.ForProvider(reg.config.Type, reg.config.ID, reg.config.Name)
	}
	reg.setModels(models)
}

// ListModels aggregates every enabled provider's catalog, sorted by provider
// priority then cost. It never returns an error; a provider whose live fetch
// fails contributes its static entries instead, and zero enabled providers
// yield an empty slice.
func (rt *Router) ListModels(ctx context.Context) []api.Model {
	var all []api.Model
	for _, reg := range rt.registry {
		if !reg.isEnabled() {
			continue
		}
		rt.refreshCatalog(ctx, reg)
		all = append(all, reg.snapshot()...)
	}

	priority := make(map[string]int, len(rt.registry))
	for _, reg := range rt.registry {
		priority[reg.config.ID] = reg.config.Priority
	}
	sort.SliceStable(all, func(i, j int) bool {
		if priority[all[i].Provider] != priority[all[j].Provider] {
			return priority[all[i].Provider] < priority[all[j].Provider]
		}
		return all[i].CostPer1KTokens < all[j].CostPer1KTokens
	})
	return all
}

// ResolveProvider returns the ID of the enabled provider owning modelID.
// The registry is scanned in priority order so a model advertised by two
// providers resolves to the more preferred one.
func (rt *Router) ResolveProvider(modelID string) (string, error) {
	reg := rt.resolve(modelID)
	if reg == nil {
		return "", ErrModelNotFound
	}
	return reg.config.ID, nil
}

func (rt *Router) resolve(modelID string) *registration {
	for _, reg := range rt.registry {
		if reg.isEnabled() && reg.serves(modelID) {
			return reg
		}
	}
	return nil
}

// fallbackFor picks the best fallback candidate for reg: enabled providers
// with a strictly higher priority number (less preferred), lowest number
// first. When requireCapacity is set, candidates at their own rate ceiling
// are skipped; when modelID is non-empty, candidates must serve that model.
func (rt *Router) fallbackFor(reg *registration, requireCapacity bool, modelID string) *registration {
	var best *registration
	for _, cand := range rt.registry {
		if cand == reg || !cand.isEnabled() {
			continue
		}
		if cand.config.Priority <= reg.config.Priority {
			continue
		}
		if requireCapacity && !cand.limiter.available() {
			continue
		}
		if modelID != "" && !cand.serves(modelID) {
			continue
		}
		if best == nil || cand.config.Priority < best.config.Priority {
			best = cand
		}
	}
	return best
}

// Dispatch routes a completion request to the owning provider, throttling
// against its sliding 60-second window and falling back at most one hop on
// saturation or upstream failure.
func (rt *Router) Dispatch(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error) {
	// Non-chat models (embeddings, speech, image generation) are healed by
	// substituting the configured default chat model instead of rejecting.
	if !modeldata.IsChatModel(req.Model) {
		if rt.defaultChatModel == "" {
			return nil, ErrUnsupportedModel
		}
		rt.logger.Info("substituting default chat model for non-chat request",
			zap.String("requested", req.Model),
			zap.String("substituted", rt.defaultChatModel))
		healed := *req
		healed.Model = rt.defaultChatModel
		req = &healed
	}

	reg := rt.resolve(req.Model)
	if reg == nil {
		return nil, ErrModelNotFound
	}

	// reserve is the atomic check-and-record: the dispatch timestamp lands
	// before the upstream call so concurrent dispatches throttle
	// conservatively.
	if !reg.limiter.reserve() {
		fb := rt.fallbackFor(reg, true, "")
		if fb == nil {
			return nil, ErrRateLimited
		}
		rt.logger.Info("provider saturated, dispatching to fallback",
			zap.String("provider", reg.config.ID),
			zap.String("fallback", fb.config.ID))
		if !fb.limiter.reserve() {
			return nil, ErrRateLimited
		}
		reg = fb
	}

	result, err := reg.provider.Complete(ctx, req)
	if err == nil {
		reg.setError(nil)
		return result, nil
	}
	reg.setError(err)
	rt.logger.Warn("provider call failed",
		zap.String("provider", reg.config.ID),
		zap.String("model", req.Model),
		zap.Error(err))

	// One fallback hop, rate state ignored, same model required.
	fb := rt.fallbackFor(reg, false, req.Model)
	if fb == nil {
		return nil, &ProviderError{Provider: reg.config.ID, Err: err}
	}
	fb.limiter.reserve()
	result, fbErr := fb.provider.Complete(ctx, req)
	if fbErr != nil {
		fb.setError(fbErr)
		return nil, &ProviderError{Provider: reg.config.ID, Err: err}
	}
	rt.logger.Info("fallback dispatch succeeded",
		zap.String("failed_provider", reg.config.ID),
		zap.String("fallback", fb.config.ID))
	return result, nil
}

// ProviderStatus reports the health view of every configured provider,
// enabled or not. Pure read.
func (rt *Router) ProviderStatus() map[string]api.ProviderStatus {
	out := make(map[string]api.ProviderStatus, len(rt.registry))
	for _, reg := range rt.registry {
		reg.mu.RLock()
		out[reg.config.ID] = api.ProviderStatus{
			Name:               reg.config.Name,
			Enabled:            reg.enabled,
			Priority:           reg.config.Priority,
			RateLimit:          reg.config.RateLimit,
			RequestsLastMinute: reg.limiter.count(),
			LastError:          reg.lastErr,
		}
		reg.mu.RUnlock()
	}
	return out
}
