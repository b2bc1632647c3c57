package strategy

import (
	"strings"
	"sync"

	"github.com/automenta/mcr/internal/errs"
)

// Registry holds immutable Strategy definitions keyed by both their full
// ID (e.g. "SIR-R2-FewShot-Assert") and their content hash. Registration
// happens once at startup; afterwards the registry is read-only and safe
// for concurrent use, matching the "initialised once, read-only
// afterwards" shared-resource rule.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]*Strategy
	byHash   map[string]*Strategy
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]*Strategy),
		byHash: make(map[string]*Strategy),
	}
}

// Register adds s, indexed by its ID and its hash.
func (r *Registry) Register(s *Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
	r.byHash[s.Hash] = s
}

// ByHash looks up a strategy by its content hash.
func (r *Registry) ByHash(hash string) (*Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byHash[hash]
	return s, ok
}

// Resolve implements the "base + operation" lookup rule: first tries
// "{base}-{operation}", then falls back to the bare base ID if that
// also names a registered strategy of the right operation.
func (r *Registry) Resolve(base string, operation Operation) (*Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	suffixed := base + "-" + string(operation)
	if s, ok := r.byID[suffixed]; ok {
		return s, nil
	}
	if s, ok := r.byID[base]; ok && s.Operation == operation {
		return s, nil
	}
	return nil, errs.Newf(errs.StrategyNotFound, "no %s strategy found for base id %q", operation, base)
}

// ResolveID looks up a strategy by its exact ID, with no suffix
// fallback; used when a caller already supplies a full strategy ID.
func (r *Registry) ResolveID(id string) (*Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

// TrimBase strips a trailing "-Assert" or "-Query" suffix, returning the
// base ID a caller-supplied strategy override is expected to name.
func TrimBase(id string) string {
	for _, suffix := range []string{"-" + string(OperationAssert), "-" + string(OperationQuery)} {
		if strings.HasSuffix(id, suffix) {
			return strings.TrimSuffix(id, suffix)
		}
	}
	return id
}
