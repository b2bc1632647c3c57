// Package strategy defines the Strategy Node DAG, its content-addressed
// Strategy definition, the Strategy Registry, and the Strategy Executor
// that interprets a strategy against the LLM Gateway, Prompt Registry,
// and Reasoner Gateway.
package strategy

// Operation is what a Strategy produces.
type Operation string

const (
	OperationAssert Operation = "Assert"
	OperationQuery  Operation = "Query"
)

// NodeKind tags which payload a Node carries. A Node is a Go sum type
// expressed as a struct with exactly one populated payload field: a
// tagged variant with a per-kind payload rather than a string-keyed
// atom dispatch.
type NodeKind string

const (
	KindLLMCall         NodeKind = "LLMCall"
	KindParseJSON       NodeKind = "ParseJSON"
	KindSIRTransform    NodeKind = "SIRTransform"
	KindValidateClauses NodeKind = "ValidateClauses"
	KindReturn          NodeKind = "Return"
)

// Node is one step of a Strategy's DAG. Exactly one of the payload
// fields matching Kind is populated.
type Node struct {
	Name string   `json:"name"`
	Kind NodeKind `json:"kind"`

	LLMCall         *LLMCallNode         `json:"llmCall,omitempty"`
	ParseJSON       *ParseJSONNode       `json:"parseJSON,omitempty"`
	SIRTransform    *SIRTransformNode    `json:"sirTransform,omitempty"`
	ValidateClauses *ValidateClausesNode `json:"validateClauses,omitempty"`
	Return          *ReturnNode          `json:"return,omitempty"`
}

// LLMCallNode invokes the LLM Gateway via a named prompt template.
// InputBindings maps a prompt template variable name to the context key
// supplying its value; OutputName is the context key the raw completion
// text is bound to.
type LLMCallNode struct {
	PromptName     string            `json:"promptName"`
	InputBindings  map[string]string `json:"inputBindings"`
	OutputName     string            `json:"outputName"`
}

// ParseJSONNode parses a context value as JSON, tolerating a fenced
// ```json ... ``` wrapper, and binds the decoded value under OutputName.
// SchemaTag is advisory metadata only; it does not change parsing.
type ParseJSONNode struct {
	Input      string `json:"input"`
	OutputName string `json:"outputName"`
	SchemaTag  string `json:"schemaTag,omitempty"`
}

// SIRTransformNode maps a decoded SIR record tree (as produced by
// ParseJSON) into an ordered slice of clause strings.
type SIRTransformNode struct {
	Input      string `json:"input"`
	OutputName string `json:"outputName"`
}

// ValidateClausesNode feeds each clause in the named context value to
// the Clause Validator, aborting the pipeline on the first failure. It
// does not rename its input; on success the input is simply confirmed
// and remains addressable under its own name.
type ValidateClausesNode struct {
	Input string `json:"input"`
}

// ReturnNode names the context value that is the pipeline's result.
type ReturnNode struct {
	Input string `json:"input"`
}

// requires returns the context keys this node reads before it runs.
func (n Node) requires() []string {
	switch n.Kind {
	case KindLLMCall:
		keys := make([]string, 0, len(n.LLMCall.InputBindings))
		for _, ctxKey := range n.LLMCall.InputBindings {
			keys = append(keys, ctxKey)
		}
		return keys
	case KindParseJSON:
		return []string{n.ParseJSON.Input}
	case KindSIRTransform:
		return []string{n.SIRTransform.Input}
	case KindValidateClauses:
		return []string{n.ValidateClauses.Input}
	case KindReturn:
		return []string{n.Return.Input}
	default:
		return nil
	}
}

// produces returns the context key this node writes, if any.
func (n Node) produces() (string, bool) {
	switch n.Kind {
	case KindLLMCall:
		return n.LLMCall.OutputName, true
	case KindParseJSON:
		return n.ParseJSON.OutputName, true
	case KindSIRTransform:
		return n.SIRTransform.OutputName, true
	default:
		return "", false
	}
}
