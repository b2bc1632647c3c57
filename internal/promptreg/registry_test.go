package promptreg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automenta/mcr/internal/errs"
)

func TestRegisterRejectsUndeclaredVariable(t *testing.T) {
	r := New()
	err := r.Register(Template{
		Name:      "bad",
		System:    "Hello {{name}}",
		Variables: []string{},
	})
	require.Error(t, err)
	assert.Equal(t, errs.PromptFormattingFailed, err.(*errs.Error).Code)
}

func TestFillSubstitutesDeclaredVariables(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Template{
		Name:      "greet",
		System:    "You are an assistant for {{topic}}.",
		User:      "Say hello to {{name}}.",
		Variables: []string{"topic", "name"},
	}))

	filled, err := r.Fill("greet", map[string]string{"topic": "cats", "name": "Fluffy"})
	require.NoError(t, err)
	assert.Equal(t, "You are an assistant for cats.", filled.System)
	assert.Equal(t, "Say hello to Fluffy.", filled.User)
}

func TestFillMissingVariableErrors(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Template{
		Name:      "greet",
		System:    "Hello {{name}}",
		Variables: []string{"name"},
	}))

	_, err := r.Fill("greet", map[string]string{})
	require.Error(t, err)
	assert.Equal(t, errs.PromptFormattingFailed, err.(*errs.Error).Code)
}

func TestFillRejectsNestedPlaceholderInValue(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Template{
		Name:      "greet",
		System:    "Hello {{name}}",
		Variables: []string{"name"},
	}))

	_, err := r.Fill("greet", map[string]string{"name": "{{injected}}"})
	require.Error(t, err)
}

func TestGetUnknownTemplateErrors(t *testing.T) {
	r := New()
	_, err := r.Get("nonexistent")
	require.Error(t, err)
	assert.Equal(t, errs.PromptTemplateNotFound, err.(*errs.Error).Code)
}

func TestAllReturnsEveryRegisteredTemplate(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Template{Name: "a", System: "x"}))
	require.NoError(t, r.Register(Template{Name: "b", System: "y"}))

	all := r.All()
	assert.Len(t, all, 2)
	assert.Contains(t, all, "a")
	assert.Contains(t, all, "b")
}
