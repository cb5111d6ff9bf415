package api

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role    Role   `json:"role" binding:"required,oneof=user assistant system"`
	Content string `json:"content" binding:"required"`
}

// CompletionRequest is the provider-agnostic request shape. Adapters
// translate it into their native wire format. Immutable once constructed.
type CompletionRequest struct {
	Model       string        `json:"model" binding:"required"`
	Messages    []ChatMessage `json:"messages" binding:"required,min=1,dive"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

// Usage is the token-usage breakdown. Providers that do not report usage
// leave it zero-filled rather than omitting it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is the normalized response returned by the router.
// ProviderUsed and ModelUsed reflect the dispatch that actually served
// the request, which may differ from the requested model after a
// substitution or fallback hop.
type CompletionResult struct {
	Content      string `json:"content"`
	ProviderUsed string `json:"provider_used"`
	ModelUsed    string `json:"model_used"`
	Usage        Usage  `json:"usage"`
}

// Model describes a single model advertised by a provider.
type Model struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Provider        string   `json:"provider"`
	ProviderName    string   `json:"provider_name"`
	ContextLength   int      `json:"context_length"`
	CostPer1KTokens float64  `json:"cost_per_1k_tokens"`
	Capabilities    []string `json:"capabilities"`
	Description     string   `json:"description"`
	MaxOutputTokens int      `json:"max_output_tokens,omitempty"`
}

// HasCapability reports whether the model carries the given tag.
func (m Model) HasCapability(tag string) bool {
	for _, c := range m.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// ProviderStatus is the health view of a single configured provider.
type ProviderStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	Priority           int    `json:"priority"`
	RateLimit          int    `json:"rate_limit"`
	RequestsLastMinute int    `json:"requests_last_minute"`
	LastError          string `json:"last_error,omitempty"`
}
