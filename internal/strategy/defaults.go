package strategy

// DefaultBaseID is the system default base strategy ID used when no
// per-session override and no router recommendation apply.
const DefaultBaseID = "SIR-Default"

// NewDefaultRegistry builds a Registry with the system default Assert
// and Query strategies wired to the default prompt templates.
func NewDefaultRegistry() (*Registry, error) {
	reg := NewRegistry()

	assertNodes := []Node{
		{
			Name: "llm_sir",
			Kind: KindLLMCall,
			LLMCall: &LLMCallNode{
				PromptName: "NL_TO_SIR_ASSERT",
				InputBindings: map[string]string{
					"naturalLanguageText": "naturalLanguageText",
					"existingFacts":       "existingFacts",
					"ontologyRules":       "ontologyRules",
					"lexiconSummary":      "lexiconSummary",
				},
				OutputName: "sirRaw",
			},
		},
		{
			Name: "parse_sir",
			Kind: KindParseJSON,
			ParseJSON: &ParseJSONNode{
				Input:      "sirRaw",
				OutputName: "sirParsed",
			},
		},
		{
			Name: "transform_sir",
			Kind: KindSIRTransform,
			SIRTransform: &SIRTransformNode{
				Input:      "sirParsed",
				OutputName: "clauses",
			},
		},
		{
			Name: "validate_clauses",
			Kind: KindValidateClauses,
			ValidateClauses: &ValidateClausesNode{
				Input: "clauses",
			},
		},
		{
			Name: "return_clauses",
			Kind: KindReturn,
			Return: &ReturnNode{
				Input: "clauses",
			},
		},
	}

	assertStrategy, err := New(DefaultBaseID+"-Assert", "Default SIR-based assertion", OperationAssert, assertNodes)
	if err != nil {
		return nil, err
	}
	reg.Register(assertStrategy)

	queryNodes := []Node{
		{
			Name: "llm_query",
			Kind: KindLLMCall,
			LLMCall: &LLMCallNode{
				PromptName: "NL_TO_PROLOG_QUERY",
				InputBindings: map[string]string{
					"naturalLanguageQuestion": "naturalLanguageQuestion",
					"existingFacts":           "existingFacts",
					"ontologyRules":           "ontologyRules",
					"lexiconSummary":          "lexiconSummary",
				},
				OutputName: "queryText",
			},
		},
		{
			Name: "return_query",
			Kind: KindReturn,
			Return: &ReturnNode{
				Input: "queryText",
			},
		},
	}

	queryStrategy, err := New(DefaultBaseID+"-Query", "Default NL-to-query translation", OperationQuery, queryNodes)
	if err != nil {
		return nil, err
	}
	reg.Register(queryStrategy)

	return reg, nil
}
