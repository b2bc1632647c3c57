package coordinator

import (
	"context"
	"time"

	"github.com/automenta/mcr/internal/broadcast"
	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/session"
	"github.com/automenta/mcr/internal/strategy"
)

// AssertResult is assertNL's success payload.
type AssertResult struct {
	AddedClauses []string
	StrategyID   string
	Cost         errs.Cost
}

// AssertNL runs the assertion algorithm: resolve the assert strategy,
// run the executor, validate every produced clause, append them
// atomically, and broadcast the update.
func (c *Coordinator) AssertNL(ctx context.Context, sessionID, text string) (result *AssertResult, aerr *errs.Error) {
	start := time.Now()
	strategyID := strategy.DefaultBaseID
	defer func() { c.recordAssert(strategyID, start, aerr) }()

	sess, err := c.sessions.GetSession(sessionID)
	if err != nil {
		return nil, asError(err)
	}

	strat, serr := c.resolveStrategy(ctx, sess, text, strategy.OperationAssert)
	if serr != nil {
		return nil, serr
	}
	strategyID = strat.ID

	existingFacts, ontologyRules, _ := snapshotContext(sess, c.ontology)
	lexiconSummary, err := c.sessions.GetLexiconSummary(sessionID)
	if err != nil {
		return nil, asError(err)
	}

	seed := map[string]interface{}{
		"naturalLanguageText": text,
		"existingFacts":       existingFacts,
		"ontologyRules":       ontologyRules,
		"lexiconSummary":      lexiconSummary,
	}

	result, cost, err := c.executor.Run(ctx, strat, seed)
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}

	if len(result.Clauses) == 0 {
		return nil, errs.New(errs.NoFactsExtracted, "strategy produced no clauses").WithStrategy(strat.ID).WithCost(cost)
	}

	for _, clause := range result.Clauses {
		if err := c.reasoner.ValidateClause(clause); err != nil {
			return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
		}
	}

	if err := c.sessions.AddClauses(sessionID, result.Clauses); err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}
	if c.metrics != nil {
		c.metrics.ClausesAsserted.WithLabelValues(strat.ID).Add(float64(len(result.Clauses)))
	}

	fullKB, err := c.sessions.GetKnowledgeBase(sessionID)
	if err != nil {
		c.log.Warn("assertNL: failed to reload knowledge base for broadcast: %v", err)
	}
	if c.broadcast != nil {
		c.broadcast.Broadcast(broadcast.Update{
			SessionID:  sessionID,
			NewClauses: result.Clauses,
			FullKB:     session.SplitClauses(fullKB),
		})
	}

	return &AssertResult{AddedClauses: result.Clauses, StrategyID: strat.ID, Cost: cost}, nil
}

// AssertRawClauses splits text at every period (session.SplitClauses), validates each
// resulting clause, and appends the validated set atomically. Unlike
// AssertNL it never invokes the LLM or Strategy Executor.
func (c *Coordinator) AssertRawClauses(sessionID, text string) (*AssertResult, *errs.Error) {
	if _, err := c.sessions.GetSession(sessionID); err != nil {
		return nil, asError(err)
	}

	clauses := session.SplitClauses(text)
	for _, clause := range clauses {
		if err := c.reasoner.ValidateClause(clause); err != nil {
			return nil, asError(err)
		}
	}

	if len(clauses) == 0 {
		return nil, errs.New(errs.NoFactsExtracted, "no clauses found in input text")
	}

	if err := c.sessions.AddClauses(sessionID, clauses); err != nil {
		return nil, asError(err)
	}
	if c.metrics != nil {
		c.metrics.ClausesAsserted.WithLabelValues("raw").Add(float64(len(clauses)))
	}

	fullKB, err := c.sessions.GetKnowledgeBase(sessionID)
	if err != nil {
		c.log.Warn("assertRawClauses: failed to reload knowledge base for broadcast: %v", err)
	}
	if c.broadcast != nil {
		c.broadcast.Broadcast(broadcast.Update{
			SessionID:  sessionID,
			NewClauses: clauses,
			FullKB:     session.SplitClauses(fullKB),
		})
	}

	return &AssertResult{AddedClauses: clauses}, nil
}
