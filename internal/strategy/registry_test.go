package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReturnOnlyStrategy(t *testing.T, id string, op Operation) *Strategy {
	t.Helper()
	s, err := New(id, id, op, []Node{
		{Name: "done", Kind: KindReturn, Return: &ReturnNode{Input: "seed"}},
	})
	require.NoError(t, err)
	return s
}

func TestRegistryResolvePrefersSuffixedID(t *testing.T) {
	r := NewRegistry()
	base := mustReturnOnlyStrategy(t, "SIR-Default", OperationAssert)
	suffixed := mustReturnOnlyStrategy(t, "SIR-Default-Assert", OperationAssert)
	r.Register(base)
	r.Register(suffixed)

	got, err := r.Resolve("SIR-Default", OperationAssert)
	require.NoError(t, err)
	assert.Equal(t, suffixed, got)
}

func TestRegistryResolveFallsBackToBareBaseID(t *testing.T) {
	r := NewRegistry()
	base := mustReturnOnlyStrategy(t, "SIR-Default", OperationQuery)
	r.Register(base)

	got, err := r.Resolve("SIR-Default", OperationQuery)
	require.NoError(t, err)
	assert.Equal(t, base, got)
}

func TestRegistryResolveWrongOperationNotFound(t *testing.T) {
	r := NewRegistry()
	r.Register(mustReturnOnlyStrategy(t, "SIR-Default", OperationAssert))

	_, err := r.Resolve("SIR-Default", OperationQuery)
	require.Error(t, err)
}

func TestRegistryByHash(t *testing.T) {
	r := NewRegistry()
	s := mustReturnOnlyStrategy(t, "SIR-Default-Assert", OperationAssert)
	r.Register(s)

	got, ok := r.ByHash(s.Hash)
	require.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = r.ByHash("nonexistent")
	assert.False(t, ok)
}

func TestTrimBaseStripsKnownSuffixes(t *testing.T) {
	assert.Equal(t, "SIR-Default", TrimBase("SIR-Default-Assert"))
	assert.Equal(t, "SIR-Default", TrimBase("SIR-Default-Query"))
	assert.Equal(t, "SIR-Default", TrimBase("SIR-Default"))
}

func TestNewStrategyRequiresID(t *testing.T) {
	_, err := New("", "name", OperationAssert, []Node{
		{Name: "done", Kind: KindReturn, Return: &ReturnNode{Input: "seed"}},
	})
	require.Error(t, err)
}

func TestNewStrategyRequiresExactlyOneReturnNode(t *testing.T) {
	_, err := New("id", "name", OperationAssert, []Node{})
	require.Error(t, err)
}
