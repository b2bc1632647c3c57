package coordinator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/reasoner"
	"github.com/automenta/mcr/internal/session"
	"github.com/automenta/mcr/internal/strategy"
)

// QueryOptions carries queryNL's optional parameters.
type QueryOptions struct {
	DynamicOntology []string
	Style           string
}

// DebugInfo carries internal pipeline detail, gated by the
// Coordinator's configured debug level. At DebugNone no DebugInfo is
// returned; Solutions is filled only at DebugVerbose.
type DebugInfo struct {
	StrategyID string
	QueryText  string
	Solutions  []map[string]interface{}
	Cost       errs.Cost
}

// QueryResult is queryNL's success payload.
type QueryResult struct {
	Answer    string
	DebugInfo *DebugInfo
}

// ExplainResult is explainQuery's success payload.
type ExplainResult struct {
	Explanation string
	DebugInfo   *DebugInfo
}

// QueryNL runs the query algorithm: resolve the query strategy, derive
// a single query string, evaluate it against the assembled knowledge
// base, and synthesize a natural language answer.
func (c *Coordinator) QueryNL(ctx context.Context, sessionID, question string, opts QueryOptions) (result *QueryResult, aerr *errs.Error) {
	start := time.Now()
	strategyID := strategy.DefaultBaseID
	defer func() { c.recordQuery(strategyID, start, aerr) }()

	_, strat, queryText, kb, cost, rerr := c.runQueryStrategy(ctx, sessionID, question, opts)
	if rerr != nil {
		return nil, rerr
	}
	strategyID = strat.ID

	qr, err := c.reasoner.Query(ctx, kb, queryText)
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}

	solutionsJSON, merr := json.Marshal(qr.Bindings)
	if merr != nil {
		solutionsJSON = []byte("[]")
	}

	style := firstNonEmpty(opts.Style, debugStyle(c.cfg.DebugLevel))
	filled, err := c.prompts.Fill("LOGIC_TO_NL_ANSWER", map[string]string{
		"question":      question,
		"solutionsJson": string(solutionsJSON),
		"style":         style,
	})
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}

	resp, err := c.llm.Complete(ctx, filled.System, filled.User)
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}
	if resp.Text == "" {
		return nil, errs.New(errs.LLMEmptyResponse, "answer synthesis returned no text").WithStrategy(strat.ID).WithCost(cost)
	}
	cost.Add(errs.Cost{
		TotalTokens:  resp.Usage.PromptTokens + resp.Usage.OutputTokens,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.OutputTokens,
	})
	c.recordLLMTokens(resp.Usage)

	return &QueryResult{Answer: resp.Text, DebugInfo: c.buildDebugInfo(strat.ID, queryText, qr, cost)}, nil
}

// ExplainQuery is identical to QueryNL through strategy resolution and
// query-string derivation, but never executes the reasoner: it asks the
// LLM to explain what the derived query looks for.
func (c *Coordinator) ExplainQuery(ctx context.Context, sessionID, question string) (*ExplainResult, *errs.Error) {
	sess, strat, queryText, _, cost, aerr := c.runQueryStrategy(ctx, sessionID, question, QueryOptions{})
	if aerr != nil {
		return nil, aerr
	}

	existingFacts, ontologyRules, _ := snapshotContext(sess, c.ontology)
	filled, err := c.prompts.Fill("EXPLAIN_PROLOG_QUERY", map[string]string{
		"question":      question,
		"prologQuery":   queryText,
		"existingFacts": existingFacts,
		"ontologyRules": ontologyRules,
	})
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}

	resp, err := c.llm.Complete(ctx, filled.System, filled.User)
	if err != nil {
		return nil, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}
	if resp.Text == "" {
		return nil, errs.New(errs.EmptyExplanationGenerated, "explanation synthesis returned no text").WithStrategy(strat.ID).WithCost(cost)
	}
	cost.Add(errs.Cost{
		TotalTokens:  resp.Usage.PromptTokens + resp.Usage.OutputTokens,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.OutputTokens,
	})
	c.recordLLMTokens(resp.Usage)

	return &ExplainResult{Explanation: resp.Text, DebugInfo: c.buildDebugInfo(strat.ID, queryText, nil, cost)}, nil
}

// runQueryStrategy covers the steps shared by QueryNL and ExplainQuery:
// resolve the query strategy, run the executor to derive a single
// query string, and assemble the reasoner KB (sessionClauses ⧺
// globalOntologies ⧺ dynamicOntology).
func (c *Coordinator) runQueryStrategy(ctx context.Context, sessionID, question string, opts QueryOptions) (*session.Session, *strategy.Strategy, string, []string, errs.Cost, *errs.Error) {
	sess, err := c.sessions.GetSession(sessionID)
	if err != nil {
		return nil, nil, "", nil, errs.Cost{}, asError(err)
	}

	strat, aerr := c.resolveStrategy(ctx, sess, question, strategy.OperationQuery)
	if aerr != nil {
		return nil, nil, "", nil, errs.Cost{}, aerr
	}

	existingFacts, ontologyRules, _ := snapshotContext(sess, c.ontology)
	lexiconSummary, err := c.sessions.GetLexiconSummary(sessionID)
	if err != nil {
		return nil, nil, "", nil, errs.Cost{}, asError(err)
	}

	seed := map[string]interface{}{
		"naturalLanguageQuestion": question,
		"existingFacts":           existingFacts,
		"ontologyRules":           ontologyRules,
		"lexiconSummary":          lexiconSummary,
	}

	result, cost, err := c.executor.Run(ctx, strat, seed)
	if err != nil {
		return nil, nil, "", nil, cost, asError(err).WithStrategy(strat.ID).WithCost(cost)
	}
	if result.Query == "" {
		return nil, nil, "", nil, cost, errs.New(errs.StrategyInvalidOutput, "query strategy returned an empty query string").WithStrategy(strat.ID).WithCost(cost)
	}

	kb := make([]string, 0, len(sess.Clauses)+len(opts.DynamicOntology))
	kb = append(kb, sess.Clauses...)
	if c.ontology != nil {
		kb = append(kb, c.ontology.Snapshot()...)
	}
	kb = append(kb, opts.DynamicOntology...)

	return sess, strat, result.Query, kb, cost, nil
}

func (c *Coordinator) buildDebugInfo(strategyID, queryText string, qr *reasoner.QueryResult, cost errs.Cost) *DebugInfo {
	if c.cfg.DebugLevel == DebugNone {
		return nil
	}
	info := &DebugInfo{StrategyID: strategyID, QueryText: queryText, Cost: cost}
	if c.cfg.DebugLevel == DebugVerbose && qr != nil {
		info.Solutions = qr.Bindings
	}
	return info
}
