package reasoner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestValidateClauseAcceptsWellFormedFact(t *testing.T) {
	gw := New(DefaultConfig())
	assert.NoError(t, gw.ValidateClause("cat(fluffy)."))
}

func TestValidateClauseAddsMissingTrailingPeriod(t *testing.T) {
	gw := New(DefaultConfig())
	assert.NoError(t, gw.ValidateClause("cat(fluffy)"))
}

func TestValidateClauseRejectsEmptyText(t *testing.T) {
	gw := New(DefaultConfig())
	assert.Error(t, gw.ValidateClause("   "))
}

func TestValidateClauseRejectsMalformedSyntax(t *testing.T) {
	gw := New(DefaultConfig())
	assert.Error(t, gw.ValidateClause("cat(fluffy"))
}

func TestQueryReturnsBindingsForMatchingFact(t *testing.T) {
	gw := New(DefaultConfig())
	kb := []string{"cat(fluffy).", "cat(whiskers)."}

	result, err := gw.Query(context.Background(), kb, "cat(X)?")
	require.NoError(t, err)
	assert.Len(t, result.Bindings, 2)

	var names []interface{}
	for _, row := range result.Bindings {
		names = append(names, row["X"])
	}
	assert.Contains(t, names, "fluffy")
	assert.Contains(t, names, "whiskers")
}

func TestQueryEvaluatesRules(t *testing.T) {
	gw := New(DefaultConfig())
	kb := []string{"human(socrates).", "mortal(X) :- human(X)."}

	result, err := gw.Query(context.Background(), kb, "mortal(X)?")
	require.NoError(t, err)
	require.Len(t, result.Bindings, 1)
	assert.Equal(t, "socrates", result.Bindings[0]["X"])
}

func TestQueryUnknownPredicateReturnsEmptyBindings(t *testing.T) {
	gw := New(DefaultConfig())
	result, err := gw.Query(context.Background(), []string{"cat(fluffy)."}, "dog(X)?")
	require.NoError(t, err)
	assert.Empty(t, result.Bindings)
}

func TestQueryMalformedTextErrors(t *testing.T) {
	gw := New(DefaultConfig())
	_, err := gw.Query(context.Background(), []string{"not a clause"}, "cat(X)?")
	assert.Error(t, err)
}

func TestQueryMalformedQuerySyntaxErrors(t *testing.T) {
	gw := New(DefaultConfig())
	_, err := gw.Query(context.Background(), []string{"cat(fluffy)."}, "(((")
	assert.Error(t, err)
}

func TestQueryGroundQueryReturnsSingleEmptyBindingWhenSatisfied(t *testing.T) {
	gw := New(DefaultConfig())
	result, err := gw.Query(context.Background(), []string{"cat(fluffy)."}, "cat(fluffy)?")
	require.NoError(t, err)
	assert.Len(t, result.Bindings, 1)
}

// TestQueryTimeoutDoesNotLeakEvaluationGoroutine exercises the ctx.Done()
// branch of Query's select: the background evaluation goroutine must
// still be able to send on resultChan/errChan after the caller has
// already returned on timeout, rather than blocking forever. TestMain's
// goleak.VerifyTestMain catches a leak here across the whole package.
func TestQueryTimeoutDoesNotLeakEvaluationGoroutine(t *testing.T) {
	gw := New(Config{QueryTimeout: time.Nanosecond, FactLimit: 1000000})
	kb := []string{"cat(fluffy).", "cat(whiskers)."}

	_, err := gw.Query(context.Background(), kb, "cat(X)?")
	assert.Error(t, err)
}
