package openai

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

func init() {
	llm.Register("openai", NewAdapter)
}

type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
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
	return "openai"
}

func (a *Adapter) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}
}

// Wire types for the chat/completions endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (a *Adapter) Complete(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error) {
	wireReq := chatRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	}
	if wireReq.MaxTokens == 0 {
		wireReq.MaxTokens = modeldata.MaxTokensFor(req.Model)
	}

	for _, msg := range req.Messages {
		wireReq.Messages = append(wireReq.Messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	url := strings.TrimRight(a.config.BaseURL, "/") + "/chat/completions"

	var resp chatResponse
	if err := httpclient.PostJSON(ctx, a.client, url, a.headers(), wireReq, &resp); err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai response contained no choices")
	}

	return &api.CompletionResult{
		Content:      resp.Choices[0].Message.Content,
		ProviderUsed: a.config.ID,
		ModelUsed:    req.Model,
		Usage: api.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

type modelList struct {
	Data []struct {
		ID      string `json:"id"`
		Created int64  `json:"created"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}

func (a *Adapter) Models(ctx context.Context) ([]api.Model, error) {
	url := strings.TrimRight(a.config.BaseURL, "/") + "/models"

	var list modelList
	if err := httpclient.GetJSON(ctx, a.client, url, a.headers(), &list); err != nil {
		return nil, err
	}

	var models []api.Model
	for _, m := range list.Data {
		if !modeldata.IsChatModel(m.ID) {
			continue
		}
		models = append(models, api.Model{
			ID:              m.ID,
			Name:            m.ID,
			Provider:        a.config.ID,
			ProviderName:    a.config.Name,
			ContextLength:   contextLengthFor(m.ID),
			CostPer1KTokens: costFor(m.ID),
			Capabilities:    capabilitiesFor(m.ID),
			Description:     descriptionFor(m.ID),
			MaxOutputTokens: modeldata.MaxTokensFor(m.ID),
		})
	}

	return models, nil
}

func (a *Adapter) Probe(ctx context.Context) error {
	url := strings.TrimRight(a.config.BaseURL, "/") + "/models"
	return httpclient.GetJSON(ctx, a.client, url, a.headers(), nil)
}

var contextLengths = map[string]int{
	"gpt-4o":              128000,
	"gpt-4o-mini":         128000,
	"gpt-4-turbo":         128000,
	"gpt-4-turbo-preview": 128000,
	"gpt-4":               8192,
	"gpt-3.5-turbo":       16385,
	"gpt-3.5-turbo-16k":   16385,
}

func contextLengthFor(modelID string) int {
	if n, ok := contextLengths[modelID]; ok {
		return n
	}
	return 4096
}

var costs = map[string]float64{
	"gpt-4o":              0.0025,
	"gpt-4o-mini":         0.00015,
	"gpt-4-turbo":         0.01,
	"gpt-4-turbo-preview": 0.01,
	"gpt-4":               0.03,
	"gpt-3.5-turbo":       0.0005,
	"gpt-3.5-turbo-16k":   0.001,
}

func costFor(modelID string) float64 {
	if c, ok := costs[modelID]; ok {
		return c
	}
	return 0.002
}

func capabilitiesFor(modelID string) []string {
	lower := strings.ToLower(modelID)
	if strings.Contains(lower, "gpt-4") {
		if strings.Contains(lower, "vision") || strings.Contains(lower, "gpt-4o") {
			return []string{"chat", "reasoning", "code", "analysis", "vision", "multimodal"}
		}
		return []string{"chat", "reasoning", "code", "analysis", "complex-tasks"}
	}
	return []string{"chat", "reasoning", "code"}
}

var descriptions = map[string]string{
	"gpt-4o":              "Most advanced GPT-4 model with vision capabilities",
	"gpt-4o-mini":         "Fast and cost-effective GPT-4 model",
	"gpt-4-turbo":         "Latest GPT-4 Turbo with enhanced performance",
	"gpt-4-turbo-preview": "Preview version of GPT-4 Turbo",
	"gpt-4":               "Original GPT-4 model with advanced reasoning",
	"gpt-3.5-turbo":       "Fast and efficient conversational AI",
	"gpt-3.5-turbo-16k":   "GPT-3.5 with extended 16K context window",
}

func descriptionFor(modelID string) string {
	if d, ok := descriptions[modelID]; ok {
		return d
	}
	return fmt.Sprintf("OpenAI %s language model", modelID)
}
