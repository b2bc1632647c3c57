package promptreg

// NewDefault builds a Registry pre-loaded with the named templates the
// built-in strategies and the Coordinator reference directly.
func NewDefault() *Registry {
	r := New()
	for _, tpl := range defaultTemplates {
		// Defaults are authored in this file; a registration failure here
		// would be a programming error, not a runtime condition.
		if err := r.Register(tpl); err != nil {
			panic(err)
		}
	}
	return r
}

var defaultTemplates = []Template{
	{
		Name:      "NL_TO_SIR_ASSERT",
		Variables: []string{"naturalLanguageText", "existingFacts", "ontologyRules", "lexiconSummary"},
		System: "You translate natural language statements into a structured " +
			"intermediate representation of logic facts and rules. Respond with " +
			"JSON only.",
		User: "Existing facts:\n{{existingFacts}}\n\nOntology:\n{{ontologyRules}}\n\n" +
			"Lexicon:\n{{lexiconSummary}}\n\nStatement:\n{{naturalLanguageText}}",
	},
	{
		Name:      "NL_TO_PROLOG_QUERY",
		Variables: []string{"naturalLanguageQuestion", "existingFacts", "ontologyRules", "lexiconSummary"},
		System: "You translate a natural language question into a single " +
			"Prolog-family query ending with a period. Respond with the query " +
			"only, no commentary.",
		User: "Existing facts:\n{{existingFacts}}\n\nOntology:\n{{ontologyRules}}\n\n" +
			"Lexicon:\n{{lexiconSummary}}\n\nQuestion:\n{{naturalLanguageQuestion}}",
	},
	{
		Name:      "LOGIC_TO_NL_ANSWER",
		Variables: []string{"question", "solutionsJson", "style"},
		System:    "You turn reasoner output into a concise natural language answer.",
		User:      "Question: {{question}}\nSolutions: {{solutionsJson}}\nStyle: {{style}}",
	},
	{
		Name:      "EXPLAIN_PROLOG_QUERY",
		Variables: []string{"question", "prologQuery", "existingFacts", "ontologyRules"},
		System:    "You explain, in plain language, what a Prolog query will look for and why it was derived from the question.",
		User: "Question: {{question}}\nQuery: {{prologQuery}}\n\nFacts:\n{{existingFacts}}\n\n" +
			"Ontology:\n{{ontologyRules}}",
	},
	{
		Name:      "CLAUSES_TO_NL",
		Variables: []string{"clauses", "style"},
		System:    "You summarize logic clauses in plain natural language.",
		User:      "Style: {{style}}\nClauses:\n{{clauses}}",
	},
}
