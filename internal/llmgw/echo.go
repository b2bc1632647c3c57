package llmgw

import (
	"context"
	"fmt"
)

// EchoGateway is a dependency-free Gateway used by tests and local
// development. It deterministically reflects the user prompt so tests
// can assert on Strategy Executor wiring without a network call.
type EchoGateway struct {
	// Respond, when set, overrides the default echo behavior.
	Respond func(systemPrompt, userPrompt string) (string, error)
}

// NewEchoGateway builds an EchoGateway with the default echo behavior.
func NewEchoGateway() *EchoGateway {
	return &EchoGateway{}
}

func (g *EchoGateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (*Response, error) {
	if g.Respond != nil {
		text, err := g.Respond(systemPrompt, userPrompt)
		if err != nil {
			return nil, err
		}
		return &Response{Text: text, Usage: Usage{PromptTokens: len(userPrompt) / 4, OutputTokens: len(text) / 4}}, nil
	}
	text := fmt.Sprintf("echo: %s", userPrompt)
	return &Response{Text: text, Usage: Usage{PromptTokens: len(userPrompt) / 4, OutputTokens: len(text) / 4}}, nil
}
