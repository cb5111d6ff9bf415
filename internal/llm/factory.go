package llm

import (
	"fmt"
	"sync"

	"github.com/nexusai/router-api/internal/config"
)

// Factory constructs a Provider from its configuration.
type Factory func(cfg config.ProviderConfig) (Provider, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a factory for a provider type. Called from adapter init().
func Register(providerType string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[providerType]; exists {
		panic(fmt.Sprintf("provider factory %s already registered", providerType))
	}
	factories[providerType] = f
}

// New looks up the factory for cfg.Type and builds the adapter.
func New(cfg config.ProviderConfig) (Provider, error) {
	mu.RLock()
	f, ok := factories[cfg.Type]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider factory not found for type: %s", cfg.Type)
	}
	return f(cfg)
}
