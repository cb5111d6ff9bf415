package router

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by routing operations. Callers branch on these
// with errors.Is to pick the right HTTP status.
var (
	// ErrModelNotFound means no enabled provider advertises the model.
	ErrModelNotFound = errors.New("model not found in any enabled provider")

	// ErrRateLimited means the owning provider is at its per-minute ceiling
	// and no fallback provider could absorb the request.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrUnsupportedModel means the request named a model that cannot serve
	// chat completions and no substitute is configured.
	ErrUnsupportedModel = errors.New("model does not support chat completions")
)

// ProviderError wraps an upstream failure with the provider that produced
// it. Matches errors.Is(err, ErrProviderError).
type ProviderError struct {
	Provider string
	Err      error
}

// ErrProviderError is the target sentinel for any wrapped upstream failure.
var ErrProviderError = errors.New("provider error")

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderError
}
