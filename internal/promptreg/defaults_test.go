package promptreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRegistersAllFiveTemplates(t *testing.T) {
	r := NewDefault()
	for _, name := range []string{
		"NL_TO_SIR_ASSERT",
		"NL_TO_PROLOG_QUERY",
		"LOGIC_TO_NL_ANSWER",
		"EXPLAIN_PROLOG_QUERY",
		"CLAUSES_TO_NL",
	} {
		_, err := r.Get(name)
		require.NoError(t, err, "expected template %s to be registered", name)
	}
	assert.Len(t, r.All(), 5)
}
