package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automenta/mcr/internal/promptreg"
)

func TestEmptyBindingsCoversEveryDefaultTemplateVariable(t *testing.T) {
	bindings := emptyBindings("NL_TO_SIR_ASSERT")

	for _, tpl := range promptreg.NewDefault().All() {
		for _, v := range tpl.Variables {
			val, ok := bindings[v]
			assert.True(t, ok, "template %s variable %s has no placeholder binding", tpl.Name, v)
			assert.NotEmpty(t, val)
		}
	}
}
