package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchetypesCatalogIsComplete(t *testing.T) {
	assert.Len(t, Archetypes, 9)
	seen := make(map[string]bool)
	for _, a := range Archetypes {
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.InputType)
		assert.NotEmpty(t, a.Example)
		assert.False(t, seen[a.Name], "duplicate archetype name %q", a.Name)
		seen[a.Name] = true
	}
}
