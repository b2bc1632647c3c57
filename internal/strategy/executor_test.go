package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automenta/mcr/internal/llmgw"
	"github.com/automenta/mcr/internal/promptreg"
)

type fakeValidator struct {
	rejects map[string]bool
}

func (v fakeValidator) ValidateClause(clauseText string) error {
	if v.rejects[clauseText] {
		return assert.AnError
	}
	return nil
}

func newExecutorFixture(t *testing.T, respond func(system, user string) (string, error)) *Executor {
	t.Helper()
	prompts := promptreg.New()
	require.NoError(t, prompts.Register(promptreg.Template{
		Name:      "ASSERT_PROMPT",
		System:    "system",
		User:      "assert: {{text}}",
		Variables: []string{"text"},
	}))
	llm := &llmgw.EchoGateway{Respond: respond}
	return NewExecutor(prompts, llm, fakeValidator{})
}

func assertPipeline(t *testing.T) *Strategy {
	t.Helper()
	s, err := New("assert-fixture", "assert fixture", OperationAssert, []Node{
		{Name: "call", Kind: KindLLMCall, LLMCall: &LLMCallNode{
			PromptName:    "ASSERT_PROMPT",
			InputBindings: map[string]string{"text": "text"},
			OutputName:    "raw",
		}},
		{Name: "parse", Kind: KindParseJSON, ParseJSON: &ParseJSONNode{Input: "raw", OutputName: "parsed"}},
		{Name: "sir", Kind: KindSIRTransform, SIRTransform: &SIRTransformNode{Input: "parsed", OutputName: "clauses"}},
		{Name: "validate", Kind: KindValidateClauses, ValidateClauses: &ValidateClausesNode{Input: "clauses"}},
		{Name: "ret", Kind: KindReturn, Return: &ReturnNode{Input: "clauses"}},
	})
	require.NoError(t, err)
	return s
}

func TestExecutorRunsAssertPipelineEndToEnd(t *testing.T) {
	respond := func(system, user string) (string, error) {
		return `[{"type":"membership","instance":"fluffy","class":"cat"}]`, nil
	}
	e := newExecutorFixture(t, respond)
	s := assertPipeline(t)

	result, cost, err := e.Run(context.Background(), s, map[string]interface{}{"text": "Fluffy is a cat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat(fluffy)."}, result.Clauses)
	assert.Greater(t, cost.TotalTokens, 0)
}

func TestExecutorReturnsCostOnMidPipelineFailure(t *testing.T) {
	respond := func(system, user string) (string, error) {
		return "not json", nil
	}
	e := newExecutorFixture(t, respond)
	s := assertPipeline(t)

	result, cost, err := e.Run(context.Background(), s, map[string]interface{}{"text": "Fluffy is a cat"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Greater(t, cost.TotalTokens, 0)
}

func TestExecutorValidateClausesAbortsOnFirstRejection(t *testing.T) {
	respond := func(system, user string) (string, error) {
		return `[{"type":"membership","instance":"fluffy","class":"cat"}]`, nil
	}
	prompts := promptreg.New()
	require.NoError(t, prompts.Register(promptreg.Template{
		Name:      "ASSERT_PROMPT",
		System:    "system",
		User:      "assert: {{text}}",
		Variables: []string{"text"},
	}))
	llm := &llmgw.EchoGateway{Respond: respond}
	e := NewExecutor(prompts, llm, fakeValidator{rejects: map[string]bool{"cat(fluffy).": true}})
	s := assertPipeline(t)

	_, _, err := e.Run(context.Background(), s, map[string]interface{}{"text": "Fluffy is a cat"})
	require.Error(t, err)
}

func TestExecutorReturnNodeUnboundKeyErrors(t *testing.T) {
	e := newExecutorFixture(t, nil)
	s, err := New("broken", "broken", OperationAssert, []Node{
		{Name: "ret", Kind: KindReturn, Return: &ReturnNode{Input: "never-bound"}},
	})
	require.NoError(t, err)

	_, _, err = e.Run(context.Background(), s, nil)
	require.Error(t, err)
}

func TestExecutorQueryOperationShapesStringResult(t *testing.T) {
	respond := func(system, user string) (string, error) {
		return "mortal(socrates)?", nil
	}
	e := newExecutorFixture(t, respond)
	s, err := New("query-fixture", "query fixture", OperationQuery, []Node{
		{Name: "call", Kind: KindLLMCall, LLMCall: &LLMCallNode{
			PromptName:    "ASSERT_PROMPT",
			InputBindings: map[string]string{"text": "text"},
			OutputName:    "raw",
		}},
		{Name: "ret", Kind: KindReturn, Return: &ReturnNode{Input: "raw"}},
	})
	require.NoError(t, err)

	result, _, err := e.Run(context.Background(), s, map[string]interface{}{"text": "is Socrates mortal"})
	require.NoError(t, err)
	assert.Equal(t, "mortal(socrates)?", result.Query)
}
