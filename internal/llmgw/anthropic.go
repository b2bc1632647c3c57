package llmgw

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/logging"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250514"

// anthropicGateway calls the Anthropic Messages API directly through the
// vendor SDK. A mutex-guarded timestamp enforces a minimum gap between
// requests ahead of any server-side rate limit.
type anthropicGateway struct {
	client      anthropic.Client
	model       string
	timeout     time.Duration
	mu          sync.Mutex
	lastRequest time.Time
	log         *logging.Logger
}

func newAnthropicGateway(cfg Config) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, errs.New(errs.LLMRequestFailed, "anthropic: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &anthropicGateway{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     logging.Get(logging.CategoryLLM),
	}, nil
}

func (g *anthropicGateway) throttle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if elapsed := time.Since(g.lastRequest); elapsed < 200*time.Millisecond {
		time.Sleep(200*time.Millisecond - elapsed)
	}
	g.lastRequest = time.Now()
}

func (g *anthropicGateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (*Response, error) {
	g.throttle()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		g.log.Warn("anthropic completion failed: %v", err)
		return nil, errs.Newf(errs.LLMRequestFailed, "anthropic request failed: %v", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, errs.New(errs.LLMEmptyResponse, "anthropic returned no text content")
	}

	return &Response{
		Text: text.String(),
		Usage: Usage{
			PromptTokens: int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}
