// Package llmgw is the LLM Gateway: a provider-agnostic contract for the
// single text-completion call the Strategy Executor's LLMCall node
// needs, plus a small family of adapters over real provider SDKs,
// trimmed to the one operation this service actually drives LLMs with:
// complete a system+user prompt pair and report token usage for cost
// accounting.
package llmgw

import (
	"context"
	"time"

	"github.com/automenta/mcr/internal/errs"
)

// Usage reports token accounting for a single completion call.
type Usage struct {
	PromptTokens int
	OutputTokens int
}

// Response is the result of a completion call.
type Response struct {
	Text  string
	Usage Usage
}

// Gateway is the minimal interface the Strategy Executor programs
// against; provider identity and request throttling stay behind it.
// No adapter retries a failed call.
type Gateway interface {
	// Complete sends a system and user prompt and returns the model's
	// text response. Returns errs.LLMEmptyResponse if the provider
	// returns no text, and errs.LLMRequestFailed on any transport or
	// API-level failure.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (*Response, error)
}

// Config selects and tunes a Gateway implementation.
type Config struct {
	Provider string // "anthropic", "gemini", or "echo"
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// New builds the Gateway named by cfg.Provider.
func New(cfg Config) (Gateway, error) {
	switch cfg.Provider {
	case "anthropic":
		return newAnthropicGateway(cfg)
	case "gemini":
		return newGeminiGateway(cfg)
	case "echo", "":
		return NewEchoGateway(), nil
	default:
		return nil, errs.Newf(errs.InvalidInput, "unknown llm provider %q", cfg.Provider)
	}
}
