package config

import (
	"os"
	"sync"
)

// AnthropicConfig holds the server-side fallback key. Requests may
// carry their own key; this one only applies when they don't.
type AnthropicConfig struct {
	APIKey string
}

var (
	anthropicConfig *AnthropicConfig
	anthropicOnce   sync.Once
)

func LoadAnthropicConfig() *AnthropicConfig {
	anthropicOnce.Do(func() {
		anthropicConfig = &AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
		}
	})
	return anthropicConfig
}
