package google

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
	llm.Register("google", NewAdapter)
}

// Adapter targets the Gemini generateContent API. The conversation is
// flattened into a single prompt; Gemini's multi-turn content format is
// not used here, matching how the other single-prompt backends behave.
type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
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
	return "google"
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   *genCfg   `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genCfg struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func (a *Adapter) Complete(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error) {
	var prompt strings.Builder
	for _, msg := range req.Messages {
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = modeldata.MaxTokensFor(req.Model)
	}

	wireReq := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt.String()}}}},
		Config: &genCfg{
			Temperature:     req.Temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(a.config.BaseURL, "/"), req.Model, a.config.APIKey)

	var resp generateResponse
	if err := httpclient.PostJSON(ctx, a.client, url, nil, wireReq, &resp); err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("google response contained no candidates")
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	// Gemini does not report token usage on this endpoint; usage stays zero.
	return &api.CompletionResult{
		Content:      text.String(),
		ProviderUsed: a.config.ID,
		ModelUsed:    req.Model,
	}, nil
}

// Models returns the static Gemini catalog.
func (a *Adapter) Models(ctx context.Context) ([]api.Model, error) {
	return modeldata.ForProvider("google", a.config.ID, a.config.Name), nil
}

func (a *Adapter) Probe(ctx context.Context) error {
	url := fmt.Sprintf("%s/models?key=%s", strings.TrimRight(a.config.BaseURL, "/"), a.config.APIKey)
	return httpclient.GetJSON(ctx, a.client, url, nil, nil)
}
