package coordinator

import (
	"context"
	"strings"

	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/strategy"
)

// TranslateResult is translateNLToClauses's success payload.
type TranslateResult struct {
	Clauses    []string
	StrategyID string
}

// TranslateNLToClauses runs the assert strategy in isolation from any
// session: no existing facts, no ontology, no lexicon, and nothing
// persisted afterward. strategyIDToUse, if non-empty, overrides the
// system default base strategy.
func (c *Coordinator) TranslateNLToClauses(ctx context.Context, text, strategyIDToUse string) (*TranslateResult, *errs.Error) {
	base := strategy.DefaultBaseID
	if strategyIDToUse != "" {
		base = strategy.TrimBase(strategyIDToUse)
	}

	strat, err := c.strategies.Resolve(base, strategy.OperationAssert)
	if err != nil {
		return nil, asError(err)
	}

	seed := map[string]interface{}{
		"naturalLanguageText": text,
		"existingFacts":       "",
		"ontologyRules":       "",
		"lexiconSummary":      "",
	}

	result, cost, err := c.executor.Run(ctx, strat, seed)
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}
	if len(result.Clauses) == 0 {
		return nil, errs.New(errs.NoFactsExtracted, "strategy produced no clauses").WithStrategy(strat.ID).WithCost(cost)
	}

	return &TranslateResult{Clauses: result.Clauses, StrategyID: strat.ID}, nil
}

// TranslateClausesToNL summarizes clauses in plain language via the
// CLAUSES_TO_NL template.
func (c *Coordinator) TranslateClausesToNL(ctx context.Context, clauses []string, style string) (string, *errs.Error) {
	filled, err := c.prompts.Fill("CLAUSES_TO_NL", map[string]string{
		"clauses": strings.Join(clauses, "\n"),
		"style":   firstNonEmpty(style, "concise"),
	})
	if err != nil {
		return "", asError(err)
	}

	resp, err := c.llm.Complete(ctx, filled.System, filled.User)
	if err != nil {
		return "", asError(err)
	}
	if resp.Text == "" {
		return "", errs.New(errs.EmptyExplanationGenerated, "clause summary returned no text")
	}
	return resp.Text, nil
}
