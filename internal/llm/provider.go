package llm

import (
	"context"

	"github.com/nexusai/router-api/pkg/api"
)

// Provider is the capability interface every adapter implements. The router
// never branches on provider type; everything it needs goes through here.
type Provider interface {
	// Name returns the configured provider ID (e.g. "groq-main").
	Name() string
	// Type returns the adapter family (e.g. "openai" for any
	// OpenAI-compatible endpoint).
	Type() string
	// Models fetches the provider's live model listing.
	Models(ctx context.Context) ([]api.Model, error)
	// Complete performs a single non-streaming completion round trip.
	Complete(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error)
	// Probe is a cheap connectivity/credential check used at bootstrap.
	Probe(ctx context.Context) error
}
