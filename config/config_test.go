package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()

	req.NoError(err)
	req.Equal(ProviderOpenAI, cfg.Provider)
	req.Equal("1024", cfg.MaxTokens)
	req.Equal(60*time.Second, cfg.CompletionTimeout)
	req.Equal("gpt-4o-mini", cfg.Model())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		description string
		cfg         Config
		wantErr     bool
	}{
		{"Should accept openai with a key", Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk"}, false},
		{"Should reject openai without a key", Config{Provider: ProviderOpenAI}, true},
		{"Should accept gemini with an API key", Config{Provider: ProviderGemini, GeminiAPIKey: "k"}, false},
		{"Should accept gemini on vertex", Config{Provider: ProviderGemini, ProjectID: "p", Location: "us-central1"}, false},
		{"Should reject gemini without credentials", Config{Provider: ProviderGemini, ProjectID: "p"}, true},
		{"Should reject an unknown provider", Config{Provider: "mistral", OpenAIAPIKey: "sk"}, true},
		{"Should reject a malformed feed url", Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk", TopicFeedURL: "not a url"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Equal(t, tt.wantErr, err != nil, tt.description)
		})
	}
}

func TestConfig_Model(t *testing.T) {
	require.Equal(t, "gemini-2.5-flash-lite", (&Config{Provider: ProviderGemini}).Model())
	require.Equal(t, "custom", (&Config{Provider: ProviderGemini, DefaultModel: "custom"}).Model())
}
