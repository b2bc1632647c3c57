// Package coordinator is the outermost public facade: it composes the
// LLM Gateway, Prompt Registry, Session Store, Ontology Registry,
// Strategy Registry and Executor, Reasoner Gateway, Input Router, and
// KB Update Broadcaster into the assertion, query, and explain
// algorithms, plus session and strategy management.
package coordinator

import (
	"context"
	"strings"
	"time"

	"github.com/automenta/mcr/internal/broadcast"
	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/llmgw"
	"github.com/automenta/mcr/internal/logging"
	"github.com/automenta/mcr/internal/metrics"
	"github.com/automenta/mcr/internal/ontology"
	"github.com/automenta/mcr/internal/promptreg"
	"github.com/automenta/mcr/internal/reasoner"
	"github.com/automenta/mcr/internal/router"
	"github.com/automenta/mcr/internal/session"
	"github.com/automenta/mcr/internal/strategy"
)

// DebugLevel controls how much internal detail query/explain responses
// carry back to the caller.
type DebugLevel string

const (
	DebugNone    DebugLevel = "none"
	DebugBasic   DebugLevel = "basic"
	DebugVerbose DebugLevel = "verbose"
)

// Config tunes Coordinator-level behavior not owned by any one
// collaborator.
type Config struct {
	ModelID    string
	DebugLevel DebugLevel
}

// Coordinator composes every subsystem behind the public operation set.
type Coordinator struct {
	cfg Config

	sessions   session.Store
	ontology   ontology.Registry
	strategies *strategy.Registry
	executor   *strategy.Executor
	reasoner   reasoner.Gateway
	llm        llmgw.Gateway
	prompts    *promptreg.Registry
	router     router.Router
	broadcast  *broadcast.Broadcaster
	metrics    *metrics.Metrics

	log *logging.Logger
}

// SetMetrics attaches a Metrics bundle the Coordinator records against.
// Metrics are entirely optional; a Coordinator with none set simply
// skips recording.
func (c *Coordinator) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

// New builds a Coordinator over its collaborators. router may be nil,
// in which case strategy resolution always falls through to the
// session override or the system default.
func New(
	cfg Config,
	sessions session.Store,
	ontologyReg ontology.Registry,
	strategies *strategy.Registry,
	executor *strategy.Executor,
	reasonerGW reasoner.Gateway,
	llm llmgw.Gateway,
	prompts *promptreg.Registry,
	rt router.Router,
	bcast *broadcast.Broadcaster,
) *Coordinator {
	return &Coordinator{
		cfg:        cfg,
		sessions:   sessions,
		ontology:   ontologyReg,
		strategies: strategies,
		executor:   executor,
		reasoner:   reasonerGW,
		llm:        llm,
		prompts:    prompts,
		router:     rt,
		broadcast:  bcast,
		log:        logging.Get(logging.CategoryCoordinator),
	}
}

// CreateSession creates a session with an optional client-suggested id.
func (c *Coordinator) CreateSession(id string) (*session.Session, *errs.Error) {
	sess, err := c.sessions.CreateSession(id)
	if err != nil {
		return nil, asError(err)
	}
	return sess, nil
}

// GetSession fetches a session by id.
func (c *Coordinator) GetSession(id string) (*session.Session, *errs.Error) {
	sess, err := c.sessions.GetSession(id)
	if err != nil {
		return nil, asError(err)
	}
	return sess, nil
}

// DeleteSession removes a session by id.
func (c *Coordinator) DeleteSession(id string) (bool, *errs.Error) {
	ok, err := c.sessions.DeleteSession(id)
	if err != nil {
		return false, asError(err)
	}
	return ok, nil
}

// ListSessions lists every session, or NotImplemented if the
// configured store lacks listing.
func (c *Coordinator) ListSessions() ([]*session.Session, *errs.Error) {
	sessions, err := c.sessions.ListSessions()
	if err != nil {
		return nil, asError(err)
	}
	return sessions, nil
}

// GetKnowledgeBase returns a session's clauses joined by newlines.
func (c *Coordinator) GetKnowledgeBase(id string) (string, *errs.Error) {
	text, err := c.sessions.GetKnowledgeBase(id)
	if err != nil {
		return "", asError(err)
	}
	return text, nil
}

// GetLexiconSummary returns a session's derived predicate-shape summary.
func (c *Coordinator) GetLexiconSummary(id string) (string, *errs.Error) {
	summary, err := c.sessions.GetLexiconSummary(id)
	if err != nil {
		return "", asError(err)
	}
	return summary, nil
}

// GetActiveStrategyId returns the session's override, falling back to
// the system default if none is set. A store error is returned as is.
func (c *Coordinator) GetActiveStrategyId(id string) (string, *errs.Error) {
	active, ok, err := c.sessions.GetActiveStrategy(id)
	if err != nil {
		return "", asError(err)
	}
	if !ok || active == "" {
		return strategy.DefaultBaseID, nil
	}
	return active, nil
}

// SetActiveStrategyForSession sets id's strategy override, validating
// that strategyID names a registered base strategy first.
func (c *Coordinator) SetActiveStrategyForSession(id, strategyID string) *errs.Error {
	base := strategy.TrimBase(strategyID)
	if _, err := c.strategies.Resolve(base, strategy.OperationAssert); err != nil {
		if _, err2 := c.strategies.Resolve(base, strategy.OperationQuery); err2 != nil {
			return asError(err)
		}
	}
	if err := c.sessions.SetActiveStrategy(id, base); err != nil {
		return asError(err)
	}
	return nil
}

// GetPrompts returns every registered prompt template by name.
func (c *Coordinator) GetPrompts() map[string]promptreg.Template {
	return c.prompts.All()
}

// DebugFormatPrompt fills a named template against vars, returning the
// raw template alongside the filled result for operator inspection.
func (c *Coordinator) DebugFormatPrompt(name string, vars map[string]string) (*promptreg.Template, *promptreg.Filled, *errs.Error) {
	tpl, err := c.prompts.Get(name)
	if err != nil {
		return nil, nil, asError(err)
	}
	filled, err := c.prompts.Fill(name, vars)
	if err != nil {
		return &tpl, nil, asError(err)
	}
	return &tpl, filled, nil
}

func asError(err error) *errs.Error {
	if e, ok := err.(*errs.Error); ok {
		return e
	}
	return errs.Newf(errs.StrategyExecutionError, "unexpected failure: %v", err)
}

func snapshotContext(sess *session.Session, ontologyReg ontology.Registry) (existingFacts, ontologyRules, lexiconSummary string) {
	existingFacts = session.JoinKnowledgeBase(sess.Clauses)
	if ontologyReg != nil {
		ontologyRules = ontology.Text(ontologyReg)
	}
	lexiconSummary = "" // recomputed by the Session Store's own method when needed
	return existingFacts, ontologyRules, lexiconSummary
}

// resolveStrategy implements the shared "session override, else router,
// else system default" rule, appending operation and falling back to
// the bare base ID before the system default.
func (c *Coordinator) resolveStrategy(ctx context.Context, sess *session.Session, text string, op strategy.Operation) (*strategy.Strategy, *errs.Error) {
	base, ok, err := c.sessions.GetActiveStrategy(sess.ID)
	if err != nil {
		return nil, asError(err)
	}
	if ok && base != "" {
		if s, err := c.strategies.Resolve(base, op); err == nil {
			return s, nil
		}
	}

	if c.router != nil {
		hash := c.router.Route(ctx, text, c.cfg.ModelID)
		s, matched := c.strategies.ByHash(hash)
		matched = matched && hash != "" && s.Operation == op
		if c.metrics != nil {
			c.metrics.RouterRecommendations.WithLabelValues(c.routerMode(), boolLabel(matched)).Inc()
		}
		if matched {
			return s, nil
		}
	}

	s, err := c.strategies.Resolve(strategy.DefaultBaseID, op)
	if err != nil {
		return nil, asError(err)
	}
	return s, nil
}

// recordAssert records AssertNL outcome metrics. Safe to call with no
// Metrics attached.
func (c *Coordinator) recordAssert(strategyID string, start time.Time, aerr *errs.Error) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if aerr != nil {
		status = "error"
	}
	c.metrics.AssertDuration.WithLabelValues(strategyID, status).Observe(time.Since(start).Seconds())
	c.metrics.StrategyExecutions.WithLabelValues(strategyID, string(strategy.OperationAssert), status).Inc()
}

// recordQuery records QueryNL outcome metrics. Safe to call with no
// Metrics attached.
func (c *Coordinator) recordQuery(strategyID string, start time.Time, aerr *errs.Error) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if aerr != nil {
		status = "error"
	}
	c.metrics.QueryDuration.WithLabelValues(strategyID, status).Observe(time.Since(start).Seconds())
	c.metrics.StrategyExecutions.WithLabelValues(strategyID, string(strategy.OperationQuery), status).Inc()
}

// recordLLMTokens records prompt/output token counts against the
// Coordinator's configured model id as the provider label. Safe to
// call with no Metrics attached.
func (c *Coordinator) recordLLMTokens(usage llmgw.Usage) {
	if c.metrics == nil {
		return
	}
	c.metrics.LLMTokensUsed.WithLabelValues(c.cfg.ModelID, "prompt").Add(float64(usage.PromptTokens))
	c.metrics.LLMTokensUsed.WithLabelValues(c.cfg.ModelID, "output").Add(float64(usage.OutputTokens))
}

func debugStyle(level DebugLevel) string {
	switch level {
	case DebugVerbose:
		return "verbose"
	case DebugBasic:
		return "basic"
	default:
		return "concise"
	}
}

func (c *Coordinator) routerMode() string {
	if c.router == nil {
		return "none"
	}
	return c.router.Mode()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
