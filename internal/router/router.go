package router

import "context"

// Router is the Input Router contract: given free text and an LLM
// model ID, recommend a strategy hash from the Performance DB, or ""
// if nothing applies.
type Router interface {
	Route(ctx context.Context, text, modelID string) string

	// Mode names the router variant ("keyword" or "semantic") for
	// metrics labeling.
	Mode() string
}
