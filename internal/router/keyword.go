package router

import (
	"context"

	"github.com/automenta/mcr/internal/logging"
)

// KeywordRouter implements the keyword Input Router variant: classify
// by trailing "?" or keyword list, then rank strategies observed for
// that input type and model against the Performance DB.
type KeywordRouter struct {
	db  PerformanceDB
	log *logging.Logger
}

// NewKeywordRouter builds a KeywordRouter over db.
func NewKeywordRouter(db PerformanceDB) *KeywordRouter {
	return &KeywordRouter{db: db, log: logging.Get(logging.CategoryRouter)}
}

// Route returns the recommended strategy hash for text under modelID,
// or "" if no performance history recommends one. ctx is accepted for
// interface parity with SemanticRouter; the keyword variant does no I/O
// that needs cancellation.
func (r *KeywordRouter) Route(ctx context.Context, text, modelID string) string {
	inputType := classifyKeyword(text)
	rows, err := r.db.QueryByModelAndType(modelID, inputType)
	if err != nil {
		// The Performance DB contract already swallows its own errors;
		// this guard covers callers that implement PerformanceDB directly.
		r.log.Warn("keyword router: performance query failed: %v", err)
		return ""
	}
	return selectBest(rows)
}

// Mode identifies this variant for metrics labeling.
func (r *KeywordRouter) Mode() string { return "keyword" }
