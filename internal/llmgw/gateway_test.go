package llmgw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToEchoGateway(t *testing.T) {
	gw, err := New(Config{})
	require.NoError(t, err)
	_, ok := gw.(*EchoGateway)
	assert.True(t, ok)
}

func TestNewEchoProviderExplicit(t *testing.T) {
	gw, err := New(Config{Provider: "echo"})
	require.NoError(t, err)
	_, ok := gw.(*EchoGateway)
	assert.True(t, ok)
}

func TestNewUnknownProviderErrors(t *testing.T) {
	_, err := New(Config{Provider: "bogus"})
	assert.Error(t, err)
}

func TestNewAnthropicRequiresAPIKey(t *testing.T) {
	_, err := New(Config{Provider: "anthropic"})
	assert.Error(t, err)
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	_, err := New(Config{Provider: "gemini"})
	assert.Error(t, err)
}
