package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewProvider creates a reasoning provider based on configuration
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama", "":
		return NewOllamaProvider(cfg)

	case "openai":
		return NewOpenAIProvider(cfg)

	case "gemini":
		return NewGeminiProvider(ctx, cfg)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: ollama, openai, gemini)", cfg.Provider)
	}
}
