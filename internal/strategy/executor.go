package strategy

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/llmgw"
	"github.com/automenta/mcr/internal/logging"
	"github.com/automenta/mcr/internal/promptreg"
	"github.com/automenta/mcr/internal/reasoner"
)

// Validator is the subset of the Reasoner Gateway the ValidateClauses
// node needs; kept narrow so the executor does not import query
// concerns it never uses.
type Validator interface {
	ValidateClause(clauseText string) error
}

// Executor interprets a Strategy's node DAG. It holds no per-strategy
// mutable state between Run calls; every call gets a fresh Pipeline
// Context, and the three externally-supplied collaborators (prompts,
// LLM, validator) are safe for concurrent use across overlapping runs.
type Executor struct {
	prompts   *promptreg.Registry
	llm       llmgw.Gateway
	validator Validator
	log       *logging.Logger
}

// NewExecutor builds an Executor over the given collaborators.
func NewExecutor(prompts *promptreg.Registry, llm llmgw.Gateway, validator Validator) *Executor {
	return &Executor{prompts: prompts, llm: llm, validator: validator, log: logging.Get(logging.CategoryStrategy)}
}

// Result is the Executor's typed return value: exactly one of Clauses
// (Assert strategies) or Query (Query strategies) is populated,
// matching the node that produced the value named by the Return node.
type Result struct {
	Clauses []string
	Query   string
}

// Run executes s against seed, the initial Pipeline Context. Cost
// accumulates across every LLMCall node and is always returned, even
// on failure, so callers can report partial spend.
func (e *Executor) Run(ctx context.Context, s *Strategy, seed map[string]interface{}) (*Result, errs.Cost, error) {
	seedKeys := make(map[string]bool, len(seed))
	for k := range seed {
		seedKeys[k] = true
	}

	order, err := topologicalOrder(s.Nodes, seedKeys)
	if err != nil {
		return nil, errs.Cost{}, err
	}

	pctx := make(map[string]interface{}, len(seed)+len(order))
	for k, v := range seed {
		pctx[k] = v
	}

	var cost errs.Cost
	var returnValue interface{}

	for _, node := range order {
		switch node.Kind {
		case KindLLMCall:
			value, nodeCost, err := e.runLLMCall(ctx, node.LLMCall, pctx)
			cost.Add(nodeCost)
			if err != nil {
				return nil, cost, err
			}
			pctx[node.LLMCall.OutputName] = value

		case KindParseJSON:
			value, err := runParseJSON(node.ParseJSON, pctx)
			if err != nil {
				return nil, cost, err
			}
			pctx[node.ParseJSON.OutputName] = value

		case KindSIRTransform:
			value, err := runSIRTransform(node.SIRTransform, pctx)
			if err != nil {
				return nil, cost, err
			}
			pctx[node.SIRTransform.OutputName] = value

		case KindValidateClauses:
			if err := e.runValidateClauses(node.ValidateClauses, pctx); err != nil {
				return nil, cost, err
			}

		case KindReturn:
			v, ok := pctx[node.Return.Input]
			if !ok {
				return nil, cost, errs.Newf(errs.StrategyExecutionError, "return node references unbound context key %q", node.Return.Input)
			}
			returnValue = v
		}
	}

	result, err := shapeResult(s.Operation, returnValue)
	if err != nil {
		return nil, cost, err
	}
	return result, cost, nil
}

func (e *Executor) runLLMCall(ctx context.Context, n *LLMCallNode, pctx map[string]interface{}) (string, errs.Cost, error) {
	vars := make(map[string]string, len(n.InputBindings))
	for promptVar, contextKey := range n.InputBindings {
		raw, ok := pctx[contextKey]
		if !ok {
			return "", errs.Cost{}, errs.Newf(errs.StrategyExecutionError, "LLMCall node %q: unbound input %q", n.OutputName, contextKey)
		}
		vars[promptVar] = toPromptString(raw)
	}

	filled, err := e.prompts.Fill(n.PromptName, vars)
	if err != nil {
		return "", errs.Cost{}, err
	}

	resp, err := e.llm.Complete(ctx, filled.System, filled.User)
	if err != nil {
		return "", errs.Cost{}, err
	}

	cost := errs.Cost{
		TotalTokens:  resp.Usage.PromptTokens + resp.Usage.OutputTokens,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}
	return resp.Text, cost, nil
}

func runParseJSON(n *ParseJSONNode, pctx map[string]interface{}) (interface{}, error) {
	raw, ok := pctx[n.Input]
	if !ok {
		return nil, errs.Newf(errs.StrategyExecutionError, "ParseJSON node %q: unbound input %q", n.OutputName, n.Input)
	}
	text, ok := raw.(string)
	if !ok {
		return nil, errs.Newf(errs.StrategyExecutionError, "ParseJSON node %q: input %q is not text", n.OutputName, n.Input)
	}

	text = unfence(text)

	var value interface{}
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		prefix := text
		if len(prefix) > 200 {
			prefix = prefix[:200]
		}
		return nil, errs.Newf(errs.JSONParsingFailed, "invalid JSON: %v", err).WithDetails(prefix)
	}
	return value, nil
}

// unfence strips a ```json ... ``` or ``` ... ``` code fence if present.
func unfence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

func runSIRTransform(n *SIRTransformNode, pctx map[string]interface{}) ([]string, error) {
	raw, ok := pctx[n.Input]
	if !ok {
		return nil, errs.Newf(errs.StrategyExecutionError, "SIRTransform node %q: unbound input %q", n.OutputName, n.Input)
	}
	records, ok := raw.([]interface{})
	if !ok {
		return nil, errs.Newf(errs.InvalidSIRStructure, "SIR input is not a list of records")
	}

	clauses := make([]string, 0, len(records))
	for _, r := range records {
		record, ok := r.(map[string]interface{})
		if !ok {
			return nil, errs.New(errs.InvalidSIRStructure, "SIR record is not an object")
		}
		clause, err := sirToClause(record)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func (e *Executor) runValidateClauses(n *ValidateClausesNode, pctx map[string]interface{}) error {
	raw, ok := pctx[n.Input]
	if !ok {
		return errs.Newf(errs.StrategyExecutionError, "ValidateClauses node: unbound input %q", n.Input)
	}
	clauses, ok := raw.([]string)
	if !ok {
		return errs.Newf(errs.StrategyExecutionError, "ValidateClauses node: input %q is not a clause list", n.Input)
	}
	for _, c := range clauses {
		if err := e.validator.ValidateClause(c); err != nil {
			return err
		}
	}
	return nil
}

func shapeResult(operation Operation, value interface{}) (*Result, error) {
	switch operation {
	case OperationAssert:
		clauses, ok := value.([]string)
		if !ok {
			return nil, errs.New(errs.StrategyInvalidOutput, "assert strategy did not return an array of clause strings")
		}
		return &Result{Clauses: clauses}, nil
	case OperationQuery:
		query, ok := value.(string)
		if !ok {
			return nil, errs.New(errs.StrategyInvalidOutput, "query strategy did not return a single query string")
		}
		return &Result{Query: query}, nil
	default:
		return nil, errs.Newf(errs.StrategyExecutionError, "unknown strategy operation %q", operation)
	}
}

func toPromptString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// reasonerValidatorAdapter adapts a reasoner.Gateway to the narrower
// Validator interface the executor depends on.
type reasonerValidatorAdapter struct {
	gw reasoner.Gateway
}

// AsValidator wraps a reasoner.Gateway so it satisfies Validator.
func AsValidator(gw reasoner.Gateway) Validator {
	return reasonerValidatorAdapter{gw: gw}
}

func (a reasonerValidatorAdapter) ValidateClause(clauseText string) error {
	return a.gw.ValidateClause(clauseText)
}
