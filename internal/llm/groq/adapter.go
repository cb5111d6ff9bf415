package groq

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
	llm.Register("groq", NewAdapter)
}

// Adapter speaks Groq's OpenAI-compatible chat API but enriches model
// listings with Groq-specific context/cost/capability tables, since the
// listing endpoint reports neither.
type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
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
	return "groq"
}

func (a *Adapter) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}
}

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
		wireReq.Messages = append(wireReq.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	url := strings.TrimRight(a.config.BaseURL, "/") + "/chat/completions"

	var resp chatResponse
	if err := httpclient.PostJSON(ctx, a.client, url, a.headers(), wireReq, &resp); err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq response contained no choices")
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
		// Groq also lists Whisper and guard models; only chat models route.
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
	"llama-3.1-8b-instant":         131072,
	"llama-3.1-70b-versatile":      131072,
	"llama-3.2-1b-preview":         131072,
	"llama-3.2-3b-preview":         131072,
	"llama-3.2-11b-text-preview":   131072,
	"llama-3.2-90b-text-preview":   131072,
	"llama-3.2-11b-vision-preview": 131072,
	"mixtral-8x7b-32768":           32768,
	"gemma-7b-it":                  8192,
	"gemma2-9b-it":                 8192,
}

func contextLengthFor(modelID string) int {
	if n, ok := contextLengths[modelID]; ok {
		return n
	}
	return 8192
}

var costs = map[string]float64{
	"llama-3.1-8b-instant":         0.00005,
	"llama-3.1-70b-versatile":      0.0002,
	"llama-3.2-1b-preview":         0.00004,
	"llama-3.2-3b-preview":         0.00006,
	"llama-3.2-11b-text-preview":   0.00018,
	"llama-3.2-90b-text-preview":   0.0009,
	"llama-3.2-11b-vision-preview": 0.00018,
	"mixtral-8x7b-32768":           0.0001,
	"gemma-7b-it":                  0.00007,
	"gemma2-9b-it":                 0.00002,
}

func costFor(modelID string) float64 {
	if c, ok := costs[modelID]; ok {
		return c
	}
	return 0.0001
}

func capabilitiesFor(modelID string) []string {
	lower := strings.ToLower(modelID)
	switch {
	case strings.Contains(lower, "vision"):
		return []string{"chat", "reasoning", "vision", "multimodal"}
	case strings.Contains(modelID, "70b") || strings.Contains(modelID, "90b"):
		return []string{"chat", "reasoning", "code", "analysis", "complex-tasks"}
	case strings.Contains(lower, "mixtral"):
		return []string{"chat", "reasoning", "multilingual", "expert-mix"}
	default:
		return []string{"chat", "reasoning", "code"}
	}
}

var descriptions = map[string]string{
	"llama-3.1-8b-instant":         "Ultra-fast Llama 3.1 8B model optimized for speed and efficiency",
	"llama-3.1-70b-versatile":      "Powerful Llama 3.1 70B model for complex reasoning and analysis",
	"llama-3.2-1b-preview":         "Compact Llama 3.2 1B model for lightweight applications",
	"llama-3.2-3b-preview":         "Efficient Llama 3.2 3B model balancing speed and capability",
	"llama-3.2-11b-text-preview":   "Advanced Llama 3.2 11B model for text processing",
	"llama-3.2-90b-text-preview":   "Most powerful Llama 3.2 90B model for complex tasks",
	"llama-3.2-11b-vision-preview": "Multimodal Llama 3.2 11B with vision capabilities",
	"mixtral-8x7b-32768":           "Mixtral 8x7B mixture of experts model with 32K context",
	"gemma-7b-it":                  "Google's Gemma 7B instruction-tuned model",
	"gemma2-9b-it":                 "Google's Gemma 2 9B instruction-tuned model",
}

func descriptionFor(modelID string) string {
	if d, ok := descriptions[modelID]; ok {
		return d
	}
	return fmt.Sprintf("Groq %s language model", modelID)
}
