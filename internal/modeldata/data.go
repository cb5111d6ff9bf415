package modeldata

import "github.com/nexusai/router-api/pkg/api"

// StaticCatalog is the fallback model catalog, used whenever a provider's
// live model listing is unavailable. Live data always supersedes these
// entries. Keyed by provider type.
var StaticCatalog = map[string][]api.Model{
	"groq": {
		{
			ID:              "llama-3.1-8b-instant",
			Name:            "llama-3.1-8b-instant",
			Provider:        "groq",
			ProviderName:    "Groq",
			ContextLength:   131072,
			CostPer1KTokens: 0.00005,
			Capabilities:    []string{"chat", "reasoning", "code"},
			Description:     "Ultra-fast Llama 3.1 8B model optimized for speed and efficiency",
			MaxOutputTokens: 1024,
		},
		{
			ID:              "llama-3.1-70b-versatile",
			Name:            "llama-3.1-70b-versatile",
			Provider:        "groq",
			ProviderName:    "Groq",
			ContextLength:   131072,
			CostPer1KTokens: 0.0002,
			Capabilities:    []string{"chat", "reasoning", "code", "analysis", "complex-tasks"},
			Description:     "Powerful Llama 3.1 70B model for complex reasoning and analysis",
			MaxOutputTokens: 1024,
		},
		{
			ID:              "llama-3.2-11b-vision-preview",
			Name:            "llama-3.2-11b-vision-preview",
			Provider:        "groq",
			ProviderName:    "Groq",
			ContextLength:   131072,
			CostPer1KTokens: 0.00018,
			Capabilities:    []string{"chat", "reasoning", "vision", "multimodal"},
			Description:     "Multimodal Llama 3.2 11B with vision capabilities",
			MaxOutputTokens: 1024,
		},
		{
			ID:              "mixtral-8x7b-32768",
			Name:            "mixtral-8x7b-32768",
			Provider:        "groq",
			ProviderName:    "Groq",
			ContextLength:   32768,
			CostPer1KTokens: 0.0001,
			Capabilities:    []string{"chat", "reasoning", "multilingual", "expert-mix"},
			Description:     "Mixtral 8x7B mixture of experts model with 32K context",
			MaxOutputTokens: 1024,
		},
	},
	"openai": {
		{
			ID:              "gpt-4o",
			Name:            "gpt-4o",
			Provider:        "openai",
			ProviderName:    "OpenAI",
			ContextLength:   128000,
			CostPer1KTokens: 0.0025,
			Capabilities:    []string{"chat", "reasoning", "code", "analysis", "vision", "multimodal"},
			Description:     "Most advanced GPT-4 model with vision capabilities",
			MaxOutputTokens: 2048,
		},
		{
			ID:              "gpt-4o-mini",
			Name:            "gpt-4o-mini",
			Provider:        "openai",
			ProviderName:    "OpenAI",
			ContextLength:   128000,
			CostPer1KTokens: 0.00015,
			Capabilities:    []string{"chat", "reasoning", "code"},
			Description:     "Fast and cost-effective GPT-4 model",
			MaxOutputTokens: 2048,
		},
		{
			ID:              "gpt-3.5-turbo",
			Name:            "gpt-3.5-turbo",
			Provider:        "openai",
			ProviderName:    "OpenAI",
			ContextLength:   16385,
			CostPer1KTokens: 0.0005,
			Capabilities:    []string{"chat", "reasoning"},
			Description:     "Fast and efficient conversational AI",
			MaxOutputTokens: 1024,
		},
	},
	"anthropic": {
		{
			ID:              "claude-3-5-sonnet-20241022",
			Name:            "claude-3-5-sonnet-20241022",
			Provider:        "anthropic",
			ProviderName:    "Anthropic",
			ContextLength:   200000,
			CostPer1KTokens: 0.003,
			Capabilities:    []string{"chat", "reasoning", "code", "analysis", "vision", "multimodal"},
			Description:     "Latest Claude 3.5 Sonnet with enhanced capabilities and vision",
			MaxOutputTokens: 2048,
		},
		{
			ID:              "claude-3-5-haiku-20241022",
			Name:            "claude-3-5-haiku-20241022",
			Provider:        "anthropic",
			ProviderName:    "Anthropic",
			ContextLength:   200000,
			CostPer1KTokens: 0.00025,
			Capabilities:    []string{"chat", "reasoning", "fast-response"},
			Description:     "Fast and efficient Claude 3.5 Haiku model",
			MaxOutputTokens: 1024,
		},
		{
			ID:              "claude-3-opus-20240229",
			Name:            "claude-3-opus-20240229",
			Provider:        "anthropic",
			ProviderName:    "Anthropic",
			ContextLength:   200000,
			CostPer1KTokens: 0.015,
			Capabilities:    []string{"chat", "reasoning", "code", "analysis", "complex-tasks", "creative"},
			Description:     "Most powerful Claude 3 model for complex reasoning and creative tasks",
			MaxOutputTokens: 2048,
		},
	},
	"google": {
		{
			ID:              "gemini-1.5-pro",
			Name:            "gemini-1.5-pro",
			Provider:        "google",
			ProviderName:    "Google AI",
			ContextLength:   2000000,
			CostPer1KTokens: 0.00125,
			Capabilities:    []string{"chat", "reasoning", "code", "vision", "analysis"},
			Description:     "Google's most capable Gemini model",
			MaxOutputTokens: 2048,
		},
		{
			ID:              "gemini-1.5-flash",
			Name:            "gemini-1.5-flash",
			Provider:        "google",
			ProviderName:    "Google AI",
			ContextLength:   1000000,
			CostPer1KTokens: 0.000075,
			Capabilities:    []string{"chat", "reasoning", "code"},
			Description:     "Fast Gemini model optimized for speed",
			MaxOutputTokens: 1024,
		},
	},
	// Ollama serves whatever is pulled locally; there is no meaningful
	// static fallback beyond an empty list.
	"ollama": {},
}

// ForProvider returns the static entries for a provider type, re-tagged with
// the configured provider ID so aggregated catalogs stay consistent.
func ForProvider(providerType, providerID, providerName string) []api.Model {
	entries := StaticCatalog[providerType]
	models := make([]api.Model, len(entries))
	for i, m := range entries {
		m.Provider = providerID
		if providerName != "" {
			m.ProviderName = providerName
		}
		models[i] = m
	}
	return models
}

// maxOutputTokens mirrors the conservative per-model output ceilings used
// when a caller does not specify max_tokens.
var maxOutputTokens = map[string]int{
	"llama-3.1-8b-instant":         1024,
	"llama-3.1-70b-versatile":      1024,
	"llama-3.2-1b-preview":         256,
	"llama-3.2-3b-preview":         512,
	"llama-3.2-11b-text-preview":   1024,
	"llama-3.2-90b-text-preview":   1024,
	"llama-3.2-11b-vision-preview": 1024,
	"mixtral-8x7b-32768":           1024,
	"gemma-7b-it":                  512,
	"gemma2-9b-it":                 512,

	"gpt-4o":        2048,
	"gpt-4o-mini":   2048,
	"gpt-4-turbo":   2048,
	"gpt-4":         1024,
	"gpt-3.5-turbo": 1024,

	"claude-3-5-sonnet-20241022": 2048,
	"claude-3-haiku-20240307":    1024,
}

// MaxTokensFor returns a safe max_tokens default for a model. Unknown models
// get a very conservative limit, and the result is always capped at 512 to
// stay under every provider's floor.
func MaxTokensFor(modelID string) int {
	limit, ok := maxOutputTokens[modelID]
	if !ok {
		limit = 256
	}
	if limit > 512 {
		return 512
	}
	return limit
}
