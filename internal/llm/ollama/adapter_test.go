package ollama

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusai/router-api/internal/config"
	"github.com/nexusai/router-api/pkg/api"
)

func testAdapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	p, err := NewAdapter(config.ProviderConfig{
		ID:      "ollama",
		Type:    "ollama",
		Name:    "Ollama",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return p.(*Adapter)
}

func TestComplete_ConcatenatesRolesIntoPrompt(t *testing.T) {
	var captured generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model": "tinyllama", "response": "hello back", "done": true}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	result, err := a.Complete(t.Context(), &api.CompletionRequest{
		Model: "tinyllama",
		Messages: []api.ChatMessage{
			{Role: api.RoleSystem, Content: "Be brief."},
			{Role: api.RoleUser, Content: "Hi"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "system: Be brief.\nuser: Hi\n", captured.Prompt)
	assert.False(t, captured.Stream)
	assert.Equal(t, "hello back", result.Content)
	assert.Equal(t, "ollama", result.ProviderUsed)
	assert.Zero(t, result.Usage.TotalTokens, "local models report no usage")
}

func TestModels_ListsLocalTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models": [{"name": "tinyllama:latest", "size": 1}, {"name": "mistral:7b", "size": 2}]}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	models, err := a.Models(t.Context())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, "tinyllama:latest", models[0].ID)
	assert.Zero(t, models[0].CostPer1KTokens)
	assert.Contains(t, models[0].Capabilities, "local")
}

func TestProbe_VersionGate(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"current release passes", "0.5.4", false},
		{"minimum passes", minServerVersion, false},
		{"too old fails", "0.1.20", true},
		{"dev build passes", "dev-abc123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/version", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(versionResponse{Version: tt.version})
			}))
			defer srv.Close()

			a := testAdapter(t, srv.URL)
			err := a.Probe(t.Context())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProbe_UnreachableDaemon(t *testing.T) {
	a := testAdapter(t, "http://127.0.0.1:1")
	assert.Error(t, a.Probe(t.Context()))
}
