package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/nexusai/router-api/internal/config"
	"github.com/nexusai/router-api/internal/httpclient"
	"github.com/nexusai/router-api/internal/llm"
	"github.com/nexusai/router-api/pkg/api"
)

// minServerVersion is the oldest Ollama daemon known to support the
// non-streaming generate API this adapter relies on.
const minServerVersion = "0.1.30"

func init() {
	llm.Register("ollama", NewAdapter)
}

// Adapter targets a local Ollama daemon. It is keyless; availability is
// decided by whether the daemon answers /api/tags.
type Adapter struct {
	config config.ProviderConfig
	client *http.Client
}

func NewAdapter(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
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
	return "ollama"
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (a *Adapter) Complete(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error) {
	// Ollama's generate endpoint takes a flat prompt; roles become prefixes
	// so the model still sees the conversation structure.
	var prompt strings.Builder
	for _, msg := range req.Messages {
		prompt.WriteString(string(msg.Role))
		prompt.WriteString(": ")
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}

	wireReq := generateRequest{
		Model:  req.Model,
		Prompt: prompt.String(),
		Stream: false,
	}

	url := strings.TrimRight(a.config.BaseURL, "/") + "/api/generate"

	var resp generateResponse
	if err := httpclient.PostJSON(ctx, a.client, url, nil, wireReq, &resp); err != nil {
		return nil, err
	}

	// Local models have no token accounting and no cost.
	return &api.CompletionResult{
		Content:      resp.Response,
		ProviderUsed: a.config.ID,
		ModelUsed:    req.Model,
	}, nil
}

type tagsResponse struct {
	Models []struct {
		Name       string `json:"name"`
		Size       int64  `json:"size"`
		ModifiedAt string `json:"modified_at"`
	} `json:"models"`
}

// Models lists whatever is pulled locally. Context length is unknown to
// the tags endpoint so a conservative default is reported.
func (a *Adapter) Models(ctx context.Context) ([]api.Model, error) {
	url := strings.TrimRight(a.config.BaseURL, "/") + "/api/tags"

	var tags tagsResponse
	if err := httpclient.GetJSON(ctx, a.client, url, nil, &tags); err != nil {
		return nil, err
	}

	var models []api.Model
	for _, m := range tags.Models {
		models = append(models, api.Model{
			ID:              m.Name,
			Name:            m.Name,
			Provider:        a.config.ID,
			ProviderName:    a.config.Name,
			ContextLength:   4096,
			CostPer1KTokens: 0,
			Capabilities:    []string{"chat", "local"},
			Description:     "Locally hosted " + m.Name + " model",
			MaxOutputTokens: 256,
		})
	}

	return models, nil
}

type versionResponse struct {
	Version string `json:"version"`
}

func (a *Adapter) Probe(ctx context.Context) error {
	url := strings.TrimRight(a.config.BaseURL, "/") + "/api/version"

	var ver versionResponse
	if err := httpclient.GetJSON(ctx, a.client, url, nil, &ver); err != nil {
		return err
	}

	have, err := goversion.NewVersion(ver.Version)
	if err != nil {
		// Dev builds report non-semver strings; reachability is enough.
		return nil
	}
	if have.LessThan(goversion.Must(goversion.NewVersion(minServerVersion))) {
		return fmt.Errorf("ollama server %s is older than minimum supported %s", ver.Version, minServerVersion)
	}
	return nil
}
