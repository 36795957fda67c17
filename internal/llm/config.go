package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Providers lists the real providers in discovery order.
var Providers = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means discover from API keys.
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 15 * time.Second,
	}
}

// ConfigFromEnv reads MATHWHIZ_LLM_PROVIDER, MATHWHIZ_LLM_MODEL and the
// standard provider API key variables (GEMINI_API_KEY, ANTHROPIC_API_KEY,
// OPENAI_API_KEY, OPENROUTER_API_KEY). When no provider is named, the first
// provider with a key wins.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Gemini.APIKey = firstEnv("MATHWHIZ_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	cfg.Anthropic.APIKey = firstEnv("MATHWHIZ_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	cfg.OpenAI.APIKey = firstEnv("MATHWHIZ_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.OpenAI.BaseURL = os.Getenv("MATHWHIZ_OPENAI_BASE_URL")
	cfg.OpenRouter.APIKey = firstEnv("MATHWHIZ_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	cfg.Provider = os.Getenv("MATHWHIZ_LLM_PROVIDER")
	if cfg.Provider == "" {
		cfg.Provider = cfg.discover()
	}
	if m := os.Getenv("MATHWHIZ_LLM_MODEL"); m != "" {
		cfg.SetModel(m)
	}
	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// discover returns the first provider in Providers that has a key, or "".
func (c Config) discover() string {
	for _, p := range Providers {
		if c.apiKey(p) != "" {
			return p
		}
	}
	return ""
}

func (c Config) apiKey(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

// Model returns the configured model of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
}

// Configured reports whether a provider is selected.
func (c Config) Configured() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return ErrNoProvider
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI, ProviderOpenRouter:
		if c.apiKey(c.Provider) == "" {
			return fmt.Errorf("an API key is required for the %s provider", c.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
