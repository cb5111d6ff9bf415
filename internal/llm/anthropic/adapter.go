package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nexusai/router-api/internal/config"
	"github.com/nexusai/router-api/internal/httpclient"
	"github.com/nexusai/router-api/internal/llm"
	"github.com/nexusai/router-api/internal/modeldata"
	"github.com/nexusai/router-api/pkg/api"
)

const apiVersion = "2023-06-01"

func init() {
	llm.Register("anthropic", NewAdapter)
}

// Adapter translates to the Anthropic Messages API. Unlike the
// OpenAI-style APIs, system prompts travel in a dedicated top-level
// field rather than inside the message list.
type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &Adapter{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

func (a *Adapter) Name() string {
	return a.config.ID
}

func (a *Adapter) Type() string {
	return "anthropic"
}

func (a *Adapter) headers() map[string]string {
	return map[string]string{
		"x-api-key":         a.config.APIKey,
		"anthropic-version": apiVersion,
	}
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	System      string        `json:"system,omitempty"`
	Messages    []wireMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (a *Adapter) Complete(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error) {
	wireReq := messagesRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if wireReq.MaxTokens == 0 {
		wireReq.MaxTokens = modeldata.MaxTokensFor(req.Model)
	}

	// System messages are hoisted out of the conversation into the
	// top-level system field; multiple system turns are joined.
	var system []string
	for _, msg := range req.Messages {
		if msg.Role == api.RoleSystem {
			system = append(system, msg.Content)
			continue
		}
		wireReq.Messages = append(wireReq.Messages, wireMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	wireReq.System = strings.Join(system, "\n")

	url := strings.TrimRight(a.config.BaseURL, "/") + "/v1/messages"

	var resp messagesResponse
	if err := httpclient.PostJSON(ctx, a.client, url, a.headers(), wireReq, &resp); err != nil {
		return nil, err
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("anthropic response contained no content blocks")
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &api.CompletionResult{
		Content:      text.String(),
		ProviderUsed: a.config.ID,
		ModelUsed:    req.Model,
		Usage: api.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// Models returns the static Claude catalog. Anthropic has no public
// listing endpoint comparable to OpenAI's /models.
func (a *Adapter) Models(ctx context.Context) ([]api.Model, error) {
	return modeldata.ForProvider("anthropic", a.config.ID, a.config.Name), nil
}

// Probe sends a minimal one-token request; a 2xx or a model-level 4xx
// both prove the credentials reach the API.
func (a *Adapter) Probe(ctx context.Context) error {
	url := strings.TrimRight(a.config.BaseURL, "/") + "/v1/messages"
	probe := messagesRequest{
		Model:     "claude-3-5-haiku-20241022",
		MaxTokens: 1,
		Messages:  []wireMessage{{Role: "user", Content: "ping"}},
	}
	var resp messagesResponse
	return httpclient.PostJSON(ctx, a.client, url, a.headers(), probe, &resp)
}
