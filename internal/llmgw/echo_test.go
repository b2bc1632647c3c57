package llmgw

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoGatewayDefaultBehaviorReflectsUserPrompt(t *testing.T) {
	gw := NewEchoGateway()
	resp, err := gw.Complete(context.Background(), "system", "what is truth")
	require.NoError(t, err)
	assert.Equal(t, "echo: what is truth", resp.Text)
	assert.Greater(t, resp.Usage.PromptTokens, 0)
}

func TestEchoGatewayRespondOverrideIsUsed(t *testing.T) {
	gw := &EchoGateway{Respond: func(system, user string) (string, error) {
		return "canned", nil
	}}
	resp, err := gw.Complete(context.Background(), "system", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "canned", resp.Text)
}

func TestEchoGatewayRespondOverrideErrorPropagates(t *testing.T) {
	gw := &EchoGateway{Respond: func(system, user string) (string, error) {
		return "", assert.AnError
	}}
	_, err := gw.Complete(context.Background(), "system", "ignored")
	assert.Error(t, err)
}
