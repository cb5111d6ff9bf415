package openai

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
		ID:      "openai",
		Type:    "openai",
		Name:    "OpenAI",
		APIKey:  "sk-test",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return p.(*Adapter)
}

func TestComplete_TranslatesRequest(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "Hello!"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 8, "completion_tokens": 2, "total_tokens": 10}
		}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	result, err := a.Complete(t.Context(), &api.CompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []api.ChatMessage{
			{Role: api.RoleSystem, Content: "Be brief."},
			{Role: api.RoleUser, Content: "Hi"},
		},
	})
	require.NoError(t, err)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.False(t, captured.Stream)
	assert.Positive(t, captured.MaxTokens, "an omitted max_tokens gets the per-model default")

	assert.Equal(t, "Hello!", result.Content)
	assert.Equal(t, "openai", result.ProviderUsed)
	assert.Equal(t, 10, result.Usage.TotalTokens)
}

func TestComplete_EmptyChoicesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "choices": [], "usage": {"total_tokens": 0}}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	_, err := a.Complete(t.Context(), &api.CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []api.ChatMessage{{Role: api.RoleUser, Content: "Hi"}},
	})
	assert.Error(t, err)
}

func TestModels_FiltersNonChatModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "gpt-4o", "owned_by": "openai"},
				{"id": "whisper-1", "owned_by": "openai"},
				{"id": "text-embedding-3-small", "owned_by": "openai"},
				{"id": "gpt-3.5-turbo", "owned_by": "openai"}
			]
		}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	models, err := a.Models(t.Context())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, "gpt-4o", models[0].ID)
	assert.Contains(t, models[0].Capabilities, "vision")
	assert.Equal(t, "gpt-3.5-turbo", models[1].ID)
	assert.Equal(t, 16385, models[1].ContextLength)
}
