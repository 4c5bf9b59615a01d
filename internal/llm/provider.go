package llm

import "context"

// Provider defines the interface for generative text providers.
//
// The pipeline uses the same Complete capability for every generative step:
// claim extraction, verdict classification, follow-up query generation,
// evidence synthesis, and the prose notes in the final response. Every call
// site owns a deterministic fallback; a Provider error is never fatal.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a text completion for the request
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one generative call
type CompletionRequest struct {
	// System sets the assistant role for the call (optional)
	System string

	// Prompt is the instruction and material for the call
	Prompt string

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Config holds generative provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds. Applied per call so one slow
	// completion never stalls the whole analysis.
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// DefaultSystem is the shared assistant role for analytical calls
const DefaultSystem = "You are a careful fact-checking assistant. Answer strictly from the material provided and follow the requested output format exactly."
