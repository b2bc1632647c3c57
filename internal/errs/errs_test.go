package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStringWithoutDetails(t *testing.T) {
	e := New(SessionNotFound, "no such session")
	assert.Equal(t, "SESSION_NOT_FOUND: no such session", e.Error())
}

func TestErrorStringWithDetails(t *testing.T) {
	e := New(InvalidSIRStructure, "bad record").WithDetails("missing field 'class'")
	assert.Equal(t, "INVALID_SIR_STRUCTURE: bad record (missing field 'class')", e.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	e := Newf(StrategyNotFound, "no strategy named %q", "foo-Assert")
	assert.Equal(t, `no strategy named "foo-Assert"`, e.Message)
}

func TestBuilderChainAttachesStrategyAndCost(t *testing.T) {
	cost := Cost{TotalTokens: 42, PromptTokens: 30, OutputTokens: 12}
	e := New(LLMEmptyResponse, "no text").WithStrategy("direct-Query").WithCost(cost)
	assert.Equal(t, "direct-Query", e.StrategyID)
	assert.Equal(t, cost, e.Cost)
}

func TestCostAddAccumulates(t *testing.T) {
	total := Cost{TotalTokens: 10, PromptTokens: 6, OutputTokens: 4, EstimatedUSD: 0.01}
	total.Add(Cost{TotalTokens: 5, PromptTokens: 3, OutputTokens: 2, EstimatedUSD: 0.005})

	assert.Equal(t, 15, total.TotalTokens)
	assert.Equal(t, 9, total.PromptTokens)
	assert.Equal(t, 6, total.OutputTokens)
	assert.InDelta(t, 0.015, total.EstimatedUSD, 1e-9)
}
