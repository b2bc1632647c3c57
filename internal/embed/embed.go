// Package embed provides vector embedding generation used by the
// semantic Input Router variant to classify free text against a fixed
// archetype catalog.
package embed

import (
	"context"
	"fmt"
	"math"
)

// Embedder generates a vector embedding for a single text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config selects and configures the embedding backend.
type Config struct {
	Provider string // "gemini" or "" (no embedder configured)
	APIKey   string
	Model    string
}

// New builds an Embedder from cfg. An empty provider returns a nil
// Embedder and no error; callers should fall back to the keyword
// heuristic in that case.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "gemini", "genai":
		return newGeminiEmbedder(cfg)
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// CosineSimilarity returns the cosine similarity of a and b, clamped to
// [-1, 1]. Zero-magnitude vectors yield 0 rather than an error.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(magA) * math.Sqrt(magB))
	if sim > 1 {
		return 1
	}
	if sim < -1 {
		return -1
	}
	return sim
}
