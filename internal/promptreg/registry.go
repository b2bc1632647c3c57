// Package promptreg is the Prompt Registry: a set of named system/user
// template pairs with declared variables, filled via literal `{{name}}`
// tokens. It is deliberately a flat "one named template, one set of
// declared variables" shape, right-sized to what the Strategy
// Executor's LLMCall node actually needs.
package promptreg

import (
	"strings"
	"sync"

	"github.com/automenta/mcr/internal/errs"
)

// Template is one named prompt: a system text and a user text, each of
// which may reference any of Variables via `{{name}}`.
type Template struct {
	Name      string
	System    string
	User      string
	Variables []string
}

// Filled is the result of resolving a Template against a binding map.
type Filled struct {
	System string
	User   string
}

// Registry holds named templates, safe for concurrent read access after
// construction; registration happens once at startup in typical use but
// remains safe to call later (e.g. a strategy file hot-reload).
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds or replaces a template, scanning its system and user
// text for `{{var}}` tokens not present in Variables so that unknown
// variables are caught at registration time rather than at fill time.
func (r *Registry) Register(tpl Template) error {
	declared := make(map[string]bool, len(tpl.Variables))
	for _, v := range tpl.Variables {
		declared[v] = true
	}
	for _, used := range append(placeholders(tpl.System), placeholders(tpl.User)...) {
		if !declared[used] {
			return errs.Newf(errs.PromptFormattingFailed, "template %q references undeclared variable %q", tpl.Name, used)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tpl.Name] = tpl
	return nil
}

// Get returns the named template, or errs.PromptTemplateNotFound.
func (r *Registry) Get(name string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[name]
	if !ok {
		return Template{}, errs.Newf(errs.PromptTemplateNotFound, "no prompt template named %q", name)
	}
	return tpl, nil
}

// All returns every registered template name to text mapping, used by
// the Coordinator's getPrompts operation.
func (r *Registry) All() map[string]Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Template, len(r.templates))
	for k, v := range r.templates {
		out[k] = v
	}
	return out
}

// Fill resolves a template's system and user text against vars. Every
// `{{name}}` present in the raw template text must have a corresponding
// key in vars, or the fill fails naming the first missing key. Keys in
// vars that the template does not reference are ignored. A replacement
// value that itself introduces a `{{...}}` token is rejected so fills
// stay single-pass.
func (r *Registry) Fill(name string, vars map[string]string) (*Filled, error) {
	tpl, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	for _, v := range vars {
		if strings.Contains(v, "{{") {
			return nil, errs.Newf(errs.PromptFormattingFailed, "template %q: replacement value introduces a nested placeholder", name)
		}
	}

	system, err := fill(tpl.Name, tpl.System, vars)
	if err != nil {
		return nil, err
	}
	user, err := fill(tpl.Name, tpl.User, vars)
	if err != nil {
		return nil, err
	}
	return &Filled{System: system, User: user}, nil
}

func fill(templateName, text string, vars map[string]string) (string, error) {
	var out strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			out.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			out.WriteString(rest)
			break
		}
		end += start
		key := strings.TrimSpace(rest[start+2 : end])
		value, ok := vars[key]
		if !ok {
			return "", errs.Newf(errs.PromptFormattingFailed, "template %q: missing value for placeholder %q", templateName, key)
		}
		out.WriteString(rest[:start])
		out.WriteString(value)
		rest = rest[end+2:]
	}
	return out.String(), nil
}

// placeholders extracts every `{{name}}` token's name from text.
func placeholders(text string) []string {
	var names []string
	rest := text
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			break
		}
		end += start
		names = append(names, strings.TrimSpace(rest[start+2:end]))
		rest = rest[end+2:]
	}
	return names
}
