package router

import (
	"context"
	"sync"

	"github.com/automenta/mcr/internal/embed"
	"github.com/automenta/mcr/internal/logging"
)

// SemanticRouter implements the semantic Input Router variant: embed
// every archetype once at construction, then classify incoming text by
// nearest archetype under cosine similarity, using the archetype name
// as the Performance DB's input_type.
type SemanticRouter struct {
	db       PerformanceDB
	embedder embed.Embedder
	log      *logging.Logger

	mu         sync.RWMutex
	archetypes []Archetype
	vectors    [][]float32
}

// NewSemanticRouter builds a SemanticRouter and eagerly embeds the
// fixed archetype catalog. An archetype whose embedding fails is left
// out of the cache; if none can be embedded, the router still
// constructs and falls back to the keyword heuristic at route time.
func NewSemanticRouter(ctx context.Context, db PerformanceDB, embedder embed.Embedder) *SemanticRouter {
	r := &SemanticRouter{
		db:       db,
		embedder: embedder,
		log:      logging.Get(logging.CategoryRouter),
	}
	r.primeCache(ctx)
	return r
}

func (r *SemanticRouter) primeCache(ctx context.Context) {
	if r.embedder == nil {
		return
	}
	archetypes := make([]Archetype, 0, len(Archetypes))
	vectors := make([][]float32, 0, len(Archetypes))
	for _, a := range Archetypes {
		vec, err := r.embedder.Embed(ctx, a.Example)
		if err != nil {
			r.log.Warn("semantic router: failed to embed archetype %s: %v", a.Name, err)
			continue
		}
		archetypes = append(archetypes, a)
		vectors = append(vectors, vec)
	}

	r.mu.Lock()
	r.archetypes = archetypes
	r.vectors = vectors
	r.mu.Unlock()
}

// Route returns the recommended strategy hash for text under modelID,
// or "" if no performance history recommends one.
func (r *SemanticRouter) Route(ctx context.Context, text, modelID string) string {
	inputType, ok := r.classify(ctx, text)
	if !ok {
		inputType = classifyKeyword(text)
	}

	rows, err := r.db.QueryByModelAndType(modelID, inputType)
	if err != nil {
		r.log.Warn("semantic router: performance query failed: %v", err)
		return ""
	}
	return selectBest(rows)
}

// classify returns the archetype name nearest to text by cosine
// similarity, or ok=false if embedding is unavailable or fails.
func (r *SemanticRouter) classify(ctx context.Context, text string) (string, bool) {
	if r.embedder == nil {
		return "", false
	}

	r.mu.RLock()
	archetypes := r.archetypes
	vectors := r.vectors
	r.mu.RUnlock()

	if len(archetypes) == 0 {
		return "", false
	}

	vec, err := r.embedder.Embed(ctx, text)
	if err != nil {
		r.log.Warn("semantic router: failed to embed input: %v", err)
		return "", false
	}

	bestIdx := -1
	bestSim := -2.0 // below the valid [-1, 1] range so the first candidate always wins
	for i, av := range vectors {
		sim := embed.CosineSimilarity(vec, av)
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return "", false
	}
	return archetypes[bestIdx].Name, true
}

// Mode identifies this variant for metrics labeling.
func (r *SemanticRouter) Mode() string { return "semantic" }
