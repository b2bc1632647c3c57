package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPerformanceDBFiltersByInputType(t *testing.T) {
	db := &MemoryPerformanceDB{Rows: []PerformanceRow{
		{StrategyHash: "a", InputType: "assert"},
		{StrategyHash: "b", InputType: "query"},
	}}

	rows, err := db.QueryByModelAndType("any-model", "assert")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].StrategyHash)
}

func TestMemoryPerformanceDBMatchesModelOrUnset(t *testing.T) {
	db := &MemoryPerformanceDB{Rows: []PerformanceRow{
		{StrategyHash: "specific", InputType: "assert", LLMModelID: "claude-3"},
		{StrategyHash: "generic", InputType: "assert"},
		{StrategyHash: "other-model", InputType: "assert", LLMModelID: "gpt-4"},
	}}

	rows, err := db.QueryByModelAndType("claude-3", "assert")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var hashes []string
	for _, r := range rows {
		hashes = append(hashes, r.StrategyHash)
	}
	assert.Contains(t, hashes, "specific")
	assert.Contains(t, hashes, "generic")
}

func TestMemoryPerformanceDBEmptyWhenNoMatch(t *testing.T) {
	db := &MemoryPerformanceDB{}
	rows, err := db.QueryByModelAndType("any-model", "assert")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
