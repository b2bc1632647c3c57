package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologicalOrderOrdersByDependency(t *testing.T) {
	nodes := []Node{
		{Name: "ret", Kind: KindReturn, Return: &ReturnNode{Input: "b"}},
		{Name: "second", Kind: KindParseJSON, ParseJSON: &ParseJSONNode{Input: "a", OutputName: "b"}},
	}
	ordered, err := topologicalOrder(nodes, map[string]bool{"a": true})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "second", ordered[0].Name)
	assert.Equal(t, "ret", ordered[1].Name)
}

func TestTopologicalOrderUnsatisfiableDependencyErrors(t *testing.T) {
	nodes := []Node{
		{Name: "ret", Kind: KindReturn, Return: &ReturnNode{Input: "never-produced"}},
	}
	_, err := topologicalOrder(nodes, nil)
	assert.Error(t, err)
}

func TestTopologicalOrderCycleErrors(t *testing.T) {
	nodes := []Node{
		{Name: "a", Kind: KindParseJSON, ParseJSON: &ParseJSONNode{Input: "y", OutputName: "x"}},
		{Name: "b", Kind: KindParseJSON, ParseJSON: &ParseJSONNode{Input: "x", OutputName: "y"}},
	}
	_, err := topologicalOrder(nodes, nil)
	assert.Error(t, err)
}

func TestNewRequiresExactlyOneReturnNode(t *testing.T) {
	_, err := New("no-return", "no return", OperationAssert, []Node{
		{Name: "parse", Kind: KindParseJSON, ParseJSON: &ParseJSONNode{Input: "a", OutputName: "b"}},
	})
	assert.Error(t, err)
}

func TestNewComputesStableHashForEquivalentDefinitions(t *testing.T) {
	nodes := []Node{
		{Name: "ret", Kind: KindReturn, Return: &ReturnNode{Input: "a"}},
	}
	s1, err := New("id1", "name1", OperationAssert, nodes)
	require.NoError(t, err)
	s2, err := New("id2", "name2", OperationAssert, nodes)
	require.NoError(t, err)

	assert.Equal(t, s1.Hash, s2.Hash, "hash depends only on operation and nodes, not id or name")
}
