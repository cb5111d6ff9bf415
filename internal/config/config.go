package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Redis     RedisConfig      `mapstructure:"redis"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
	Router    RouterConfig     `mapstructure:"router"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

type ServerConfig struct {
	Port    string   `mapstructure:"port"`
	Env     string   `mapstructure:"env"`
	APIKeys []string `mapstructure:"api_keys"`
	DBPath  string   `mapstructure:"db_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// RateLimitConfig bounds the HTTP edge (per client IP), not the upstream
// providers; those carry their own per-minute ceilings in ProviderConfig.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type RouterConfig struct {
	// DefaultChatModel substitutes for non-chat model requests
	// (embeddings, speech-to-text and friends). Empty disables healing.
	DefaultChatModel string `mapstructure:"default_chat_model"`
}

// ProviderConfig is the static per-provider record. Immutable after load.
type ProviderConfig struct {
	ID        string `mapstructure:"id"`
	Type      string `mapstructure:"type"`
	Name      string `mapstructure:"name"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"-"`
	BaseURL   string `mapstructure:"base_url"`
	// Priority ranks providers: lower number = more preferred.
	Priority int `mapstructure:"priority"`
	// RateLimit is the requests-per-minute ceiling over a sliding 60s window.
	RateLimit int `mapstructure:"rate_limit"`
	// TimeoutSeconds bounds each upstream call.
	TimeoutSeconds int  `mapstructure:"timeout_seconds"`
	Enabled        bool `mapstructure:"enabled"`
}

func (p ProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// DefaultProviders mirrors the stock provider table. Used when the config
// file does not define its own providers section.
func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{ID: "groq", Type: "groq", Name: "Groq", APIKeyEnv: "GROQ_API_KEY", Priority: 1, RateLimit: 30, TimeoutSeconds: 30, Enabled: true},
		{ID: "openai", Type: "openai", Name: "OpenAI", APIKeyEnv: "OPENAI_API_KEY", Priority: 2, RateLimit: 60, TimeoutSeconds: 30, Enabled: true},
		{ID: "anthropic", Type: "anthropic", Name: "Anthropic", APIKeyEnv: "ANTHROPIC_API_KEY", Priority: 3, RateLimit: 50, TimeoutSeconds: 30, Enabled: true},
		{ID: "ollama", Type: "ollama", Name: "Ollama", APIKeyEnv: "OLLAMA_BASE_URL", BaseURL: "http://localhost:11434", Priority: 4, RateLimit: 100, TimeoutSeconds: 30, Enabled: true},
		{ID: "google", Type: "google", Name: "Google AI", APIKeyEnv: "GOOGLE_API_KEY", Priority: 6, RateLimit: 60, TimeoutSeconds: 30, Enabled: true},
	}
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if cf := os.Getenv("CONFIG_FILE"); cf != "" {
		v.SetConfigFile(cf)
	}

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.db_path", "nexusai.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("router.default_chat_model", "llama-3.1-8b-instant")

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if len(cfg.Providers) == 0 {
		cfg.Providers = DefaultProviders()
	}

	// Resolve credentials. Providers whose env var is unset keep an empty
	// APIKey; the router disables them at bootstrap rather than failing here.
	for i, p := range cfg.Providers {
		if p.APIKeyEnv != "" {
			cfg.Providers[i].APIKey = os.Getenv(p.APIKeyEnv)
		}
		// Ollama is keyless; its env var overrides the base URL instead.
		if p.Type == "ollama" {
			if base := os.Getenv(p.APIKeyEnv); base != "" {
				cfg.Providers[i].BaseURL = base
			}
		}
	}

	return &cfg, nil
}
