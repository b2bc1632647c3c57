package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitClausesTrimsAndFilters(t *testing.T) {
	got := SplitClauses("cat(fluffy). likes(fluffy, tuna).  ")
	assert.Equal(t, []string{"cat(fluffy).", "likes(fluffy, tuna)."}, got)
}

func TestSplitClausesEmptyTextYieldsNoClauses(t *testing.T) {
	assert.Empty(t, SplitClauses("   "))
}

func TestJoinKnowledgeBase(t *testing.T) {
	assert.Equal(t, "a.\nb.", JoinKnowledgeBase([]string{"a.", "b."}))
}

func TestLexiconSummaryCountsByNameAndArity(t *testing.T) {
	summary := lexiconSummary([]string{"cat(fluffy).", "cat(whiskers).", "likes(fluffy, tuna)."})
	assert.Equal(t, "cat/1 (2), likes/2 (1)", summary)
}

func TestLexiconSummaryIgnoresMalformedClauses(t *testing.T) {
	summary := lexiconSummary([]string{"not a clause", "cat(fluffy)."})
	assert.Equal(t, "cat/1 (1)", summary)
}

func TestLexiconSummaryEmptyClausesYieldsEmptyString(t *testing.T) {
	assert.Equal(t, "", lexiconSummary(nil))
}

func TestPredicateShapeHandlesRules(t *testing.T) {
	name, arity, ok := predicateShape("mortal(X) :- human(X).")
	assert.True(t, ok)
	assert.Equal(t, "mortal", name)
	assert.Equal(t, 1, arity)
}

func TestPredicateShapeZeroArity(t *testing.T) {
	name, arity, ok := predicateShape("raining().")
	assert.True(t, ok)
	assert.Equal(t, "raining", name)
	assert.Equal(t, 0, arity)
}
