package llm

import (
	"context"
	"os"
	"strconv"
	"time"

	"factcheck-backend/models"
	"factcheck-backend/preprocess"
)

// Provider defines the interface for reasoning collaborators. A provider
// takes a structured verification context and returns a verdict with
// supporting analysis.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze fact-checks a claim given its verification context
	Analyze(ctx context.Context, req AnalyzeRequest) (*Analysis, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// AnalyzeRequest contains the input for claim analysis
type AnalyzeRequest struct {
	// Claim is the raw claim text
	Claim string

	// Context is the structured output of preprocessing
	Context *preprocess.VerificationContext

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Analysis contains the reasoning collaborator's output
type Analysis struct {
	Verdict         models.Verdict `json:"verdict"`
	ConfidenceScore float64        `json:"confidence_score"`
	Explanation     string         `json:"explanation"`
	KeyEvidence     []string       `json:"key_evidence"`
	SourcesNeeded   []string       `json:"sources_needed"`
	ReasoningSteps  []string       `json:"reasoning_steps"`
	Caveats         []string       `json:"caveats"`

	// Model is the model that produced the analysis
	Model string `json:"model"`

	// Raw preserves the unparsed model output
	Raw string `json:"-"`
}

// Config holds reasoning provider configuration
type Config struct {
	// Provider name: "ollama", "openai", "gemini"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for self-hosted endpoints (Ollama)
	BaseURL string

	// Timeout for a single API call
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for generation (low keeps output focused)
	Temperature float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "ollama",
		Model:       "llama2",
		Timeout:     45 * time.Second,
		MaxTokens:   800,
		Temperature: 0.2,
	}
}

// LoadConfigFromEnv loads provider configuration from environment variables
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OLLAMA_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if tokens, err := strconv.Atoi(v); err == nil && tokens > 0 {
			cfg.MaxTokens = tokens
		}
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = temp
		}
	}

	switch cfg.Provider {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case "gemini":
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg
}
