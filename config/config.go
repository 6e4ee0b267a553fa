// Package config reads the session settings from the environment and the
// participant roster from YAML.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var ErrMissingCredential = errors.New("missing completion service credential")

type Config struct {
	Provider     string `env:"COMPLETION_PROVIDER,default=openai" validate:"oneof=openai gemini"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIURL    string `env:"OPENAI_BASE_URL" validate:"omitempty,url"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	ProjectID    string `env:"PROJECT_ID"`
	Location     string `env:"LOCATION"`

	DefaultModel      string        `env:"DEFAULT_MODEL"`
	MaxTokens         string        `env:"MAX_TOKENS,default=1024"`
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT,default=60s" validate:"gte=0"`

	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
	TranscriptDir  string `env:"TRANSCRIPT_DIR"`
	TopicFeedURL   string `env:"TOPIC_FEED_URL" validate:"omitempty,url"`
	TopicFeedLimit int    `env:"TOPIC_FEED_LIMIT,default=5" validate:"gte=0"`
}

var validate = validator.New()

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingCredential)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" && (c.ProjectID == "" || c.Location == "") {
			return fmt.Errorf("%w: set GEMINI_API_KEY, or PROJECT_ID and LOCATION", ErrMissingCredential)
		}
	}
	return nil
}

// Model returns the configured default model, or the provider's own default.
func (c *Config) Model() string {
	if c.DefaultModel != "" {
		return c.DefaultModel
	}
	if c.Provider == ProviderGemini {
		return "gemini-2.5-flash-lite"
	}
	return "gpt-4o-mini"
}
