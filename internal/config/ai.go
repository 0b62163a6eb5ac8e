package config

import (
	"time"
)

// AIConfig drives the integration-snippet helper, which talks to an
// OpenAI-compatible chat completion endpoint.
type AIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Model          string        `yaml:"model"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func loadAIConfig() *AIConfig {
	return &AIConfig{
		BaseURL:        getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:         getEnv("AI_API_KEY", ""),
		Model:          getEnv("AI_MODEL", "gpt-4o-mini"),
		RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", 60*time.Second),
	}
}
