// Package reasoner wraps github.com/google/mangle to provide the
// Reasoner Gateway and Clause Validator. Unlike a long-lived Mangle
// engine that requires predicates to be declared in a schema before
// facts can be asserted against it, this gateway treats a session's
// clauses as opaque, undeclared Datalog/Prolog text: every query
// re-parses the full knowledge base (session clauses plus any ontology
// text) as one ad hoc program, and Mangle's analysis pass synthesizes
// declarations for whichever predicates appear in the asserted facts
// and rules. There is no persistent engine state between calls.
package reasoner

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	_ "github.com/google/mangle/packages"
	"github.com/google/mangle/parse"
	"github.com/google/mangle/unionfind"

	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/logging"
)

// QueryResult is the outcome of evaluating a query against a knowledge
// base: one binding map per satisfying row, keyed by query variable name.
type QueryResult struct {
	Bindings []map[string]interface{}
	Duration time.Duration
}

// Gateway is the contract the rest of the service programs against.
// It never holds state across calls; every call is given the complete
// KB text it should reason over.
type Gateway interface {
	// ValidateClause checks that a single fact or rule parses as valid
	// Mangle syntax in isolation, without regard to any other clauses.
	ValidateClause(clauseText string) error

	// Query evaluates a single query atom against the knowledge base
	// formed by concatenating kb. Returns errs.ReasonerError on an
	// evaluation failure and errs.PrologQuerySyntax on a malformed query.
	Query(ctx context.Context, kb []string, queryText string) (*QueryResult, error)
}

// Config tunes gateway behavior.
type Config struct {
	QueryTimeout time.Duration
	FactLimit    int
}

// DefaultConfig mirrors the reasoner defaults in config.DefaultConfig.
func DefaultConfig() Config {
	return Config{QueryTimeout: 30 * time.Second, FactLimit: 1000000}
}

type gateway struct {
	cfg Config
	log *logging.Logger
}

// New constructs a Mangle-backed Gateway.
func New(cfg Config) Gateway {
	return &gateway{cfg: cfg, log: logging.Get(logging.CategoryReasoner)}
}

func (g *gateway) ValidateClause(clauseText string) error {
	clean := strings.TrimSpace(clauseText)
	if clean == "" {
		return errs.New(errs.InvalidGeneratedProlog, "clause text is empty")
	}
	if !strings.HasSuffix(clean, ".") {
		clean += "."
	}
	if _, err := parse.Clause(clean); err != nil {
		return errs.Newf(errs.InvalidGeneratedProlog, "clause failed to parse: %v", err).WithDetails(clauseText)
	}
	return nil
}

// buildProgram concatenates kb into one Mangle source unit and runs
// analysis over it, synthesizing declarations for any predicate that
// has no explicit Decl in the text.
func (g *gateway) buildProgram(kb []string) (*analysis.ProgramInfo, *factstore.SimpleInMemoryStore, error) {
	var text strings.Builder
	for _, clause := range kb {
		c := strings.TrimSpace(clause)
		if c == "" {
			continue
		}
		text.WriteString(c)
		if !strings.HasSuffix(c, ".") {
			text.WriteString(".")
		}
		text.WriteString("\n")
	}

	unit, err := parse.Unit(strings.NewReader(text.String()))
	if err != nil {
		return nil, nil, errs.Newf(errs.InvalidGeneratedProlog, "knowledge base failed to parse: %v", err)
	}

	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, nil, errs.Newf(errs.ReasonerError, "analysis failed: %v", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	count := 0
	for _, fact := range unit.Clauses {
		if fact.Premises != nil {
			continue // rules are evaluated, not stored as base facts
		}
		if g.cfg.FactLimit > 0 && count >= g.cfg.FactLimit {
			return nil, nil, errs.Newf(errs.ReasonerError, "knowledge base exceeds fact limit of %d", g.cfg.FactLimit)
		}
		store.Add(fact.Head)
		count++
	}

	if _, err := mengine.EvalProgramWithStats(programInfo, store); err != nil {
		return nil, nil, errs.Newf(errs.ReasonerError, "rule evaluation failed: %v", err)
	}

	return programInfo, store, nil
}

func (g *gateway) Query(ctx context.Context, kb []string, queryText string) (*QueryResult, error) {
	shape, err := parseQueryShape(queryText)
	if err != nil {
		return nil, errs.Newf(errs.PrologQuerySyntax, "query failed to parse: %v", err).WithDetails(queryText)
	}

	programInfo, store, err := g.buildProgram(kb)
	if err != nil {
		return nil, err
	}

	predToRules := make(map[ast.PredicateSym][]ast.Clause)
	for _, clause := range programInfo.Rules {
		predToRules[clause.Head.Predicate] = append(predToRules[clause.Head.Predicate], clause)
	}
	predToDecl := programInfo.Decls

	decl, ok := predToDecl[shape.atom.Predicate]
	if !ok || len(decl.Modes()) == 0 {
		// No rule or fact in the KB mentions this predicate at all; that
		// is a valid, simply empty, answer rather than a hard failure.
		return &QueryResult{Bindings: nil, Duration: 0}, nil
	}
	mode := decl.Modes()[0]

	qctx := &mengine.QueryContext{PredToRules: predToRules, PredToDecl: predToDecl, Store: store}

	timeout := g.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	resultChan := make(chan []map[string]interface{}, 1)
	errChan := make(chan error, 1)

	go func() {
		var rows []map[string]interface{}
		evalErr := qctx.EvalQuery(shape.atom, mode, unionfind.New(), func(fact ast.Atom) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			row := make(map[string]interface{}, len(shape.variables))
			for _, v := range shape.variables {
				if v.Index >= len(fact.Args) {
					continue
				}
				row[v.Name] = termToInterface(fact.Args[v.Index])
			}
			rows = append(rows, row)
			return nil
		})
		if evalErr != nil {
			errChan <- evalErr
			return
		}
		resultChan <- rows
	}()

	select {
	case rows := <-resultChan:
		return &QueryResult{Bindings: rows, Duration: time.Since(start)}, nil
	case err := <-errChan:
		return nil, errs.Newf(errs.ReasonerError, "query evaluation failed: %v", err)
	case <-ctx.Done():
		return nil, errs.Newf(errs.ReasonerError, "query timed out after %v", time.Since(start))
	}
}

type queryVariable struct {
	Name  string
	Index int
}

type queryShape struct {
	atom      ast.Atom
	variables []queryVariable
}

func parseQueryShape(query string) (*queryShape, error) {
	clean := strings.TrimSpace(query)
	if clean == "" {
		return nil, fmt.Errorf("empty query")
	}
	clean = strings.TrimPrefix(clean, "?")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimSuffix(clean, ".")

	atom, err := parse.Atom(clean)
	if err != nil {
		atom, err = parse.Atom(clean + ".")
		if err != nil {
			return nil, fmt.Errorf("parsing query %q: %w", query, err)
		}
	}

	vars := make([]queryVariable, 0, len(atom.Args))
	for idx, arg := range atom.Args {
		if v, ok := arg.(ast.Variable); ok {
			vars = append(vars, queryVariable{Name: v.Symbol, Index: idx})
		}
	}
	return &queryShape{atom: atom, variables: vars}, nil
}

func termToInterface(term ast.BaseTerm) interface{} {
	switch v := term.(type) {
	case ast.Constant:
		return constantToInterface(v)
	case ast.Variable:
		return v.Symbol
	default:
		return fmt.Sprintf("%v", term)
	}
}

func constantToInterface(constant ast.Constant) interface{} {
	switch constant.Type {
	case ast.StringType:
		return constant.Symbol
	case ast.NameType:
		return strings.TrimPrefix(constant.Symbol, "/")
	case ast.NumberType:
		return constant.NumValue
	case ast.Float64Type:
		return math.Float64frombits(uint64(constant.NumValue))
	default:
		return constant.String()
	}
}
