package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "test")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Env)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Router.DefaultChatModel)
}

func TestLoadConfig_ProviderDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Providers)

	byID := make(map[string]ProviderConfig)
	for _, p := range cfg.Providers {
		byID[p.ID] = p
	}

	groq, ok := byID["groq"]
	require.True(t, ok)
	assert.Equal(t, 1, groq.Priority)
	assert.Equal(t, 30, groq.RateLimit)

	// Ollama is keyless and must carry a base URL out of the box.
	ollama, ok := byID["ollama"]
	require.True(t, ok)
	assert.NotEmpty(t, ollama.BaseURL)
}

func TestLoadConfig_CredentialResolution(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test-12345")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	for _, p := range cfg.Providers {
		if p.ID == "groq" {
			assert.Equal(t, "gsk-test-12345", p.APIKey)
		}
	}
}

func TestProviderConfig_Timeout(t *testing.T) {
	p := ProviderConfig{TimeoutSeconds: 10}
	assert.Equal(t, "10s", p.Timeout().String())

	// Zero falls back to the safe default.
	p = ProviderConfig{}
	assert.Equal(t, "30s", p.Timeout().String())
}
