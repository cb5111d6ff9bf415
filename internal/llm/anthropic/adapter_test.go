package anthropic

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
		ID:      "anthropic",
		Type:    "anthropic",
		Name:    "Anthropic",
		APIKey:  "sk-ant-test",
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return p.(*Adapter)
}

func TestComplete_HoistsSystemMessages(t *testing.T) {
	var captured messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"model": "claude-3-5-sonnet-20241022",
			"content": [{"type": "text", "text": "Hi "}, {"type": "text", "text": "there"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 3}
		}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	result, err := a.Complete(t.Context(), &api.CompletionRequest{
		Model: "claude-3-5-sonnet-20241022",
		Messages: []api.ChatMessage{
			{Role: api.RoleSystem, Content: "You are terse."},
			{Role: api.RoleUser, Content: "Hello"},
			{Role: api.RoleSystem, Content: "Answer in English."},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "You are terse.\nAnswer in English.", captured.System)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Positive(t, captured.MaxTokens, "an omitted max_tokens must be defaulted, the API requires it")

	assert.Equal(t, "Hi there", result.Content)
	assert.Equal(t, "anthropic", result.ProviderUsed)
	assert.Equal(t, 12, result.Usage.PromptTokens)
	assert.Equal(t, 3, result.Usage.CompletionTokens)
	assert.Equal(t, 15, result.Usage.TotalTokens)
}

func TestComplete_EmptyContentIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "msg_2", "content": [], "usage": {"input_tokens": 1, "output_tokens": 0}}`))
	}))
	defer srv.Close()

	a := testAdapter(t, srv.URL)
	_, err := a.Complete(t.Context(), &api.CompletionRequest{
		Model:    "claude-3-5-haiku-20241022",
		Messages: []api.ChatMessage{{Role: api.RoleUser, Content: "Hello"}},
	})
	assert.Error(t, err)
}
