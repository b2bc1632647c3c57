package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRegistryResolvesBothOperations(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	assertStrat, err := reg.Resolve(DefaultBaseID, OperationAssert)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseID+"-Assert", assertStrat.ID)

	queryStrat, err := reg.Resolve(DefaultBaseID, OperationQuery)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseID+"-Query", queryStrat.ID)
}

func TestNewDefaultRegistryAssertAndQueryHashesDiffer(t *testing.T) {
	reg, err := NewDefaultRegistry()
	require.NoError(t, err)

	assertStrat, _ := reg.Resolve(DefaultBaseID, OperationAssert)
	queryStrat, _ := reg.Resolve(DefaultBaseID, OperationQuery)
	assert.NotEqual(t, assertStrat.Hash, queryStrat.Hash)
}
