package router

// Archetype is a fixed catalog entry the semantic router compares an
// input against by embedding cosine similarity. Each entry represents
// one recurring shape of natural-language input the service has been
// tuned against.
type Archetype struct {
	Name      string
	InputType string
	Example   string
}

// Archetypes is the fixed catalog of input shapes. Embeddings are
// computed once when the semantic router is built and cached in it;
// the catalog itself carries no vectors.
var Archetypes = []Archetype{
	{Name: "simple-fact-assertion", InputType: "assert", Example: "Socrates is a man."},
	{Name: "relational-fact-assertion", InputType: "assert", Example: "Alice is the manager of Bob."},
	{Name: "attribute-assertion", InputType: "assert", Example: "The sky has the color blue."},
	{Name: "conditional-rule-assertion", InputType: "assert", Example: "All men are mortal."},
	{Name: "compositional-assertion", InputType: "assert", Example: "A car is a vehicle with four wheels and an engine."},
	{Name: "yes-no-query", InputType: "query", Example: "Is Socrates mortal?"},
	{Name: "wh-entity-query", InputType: "query", Example: "Who is the manager of Bob?"},
	{Name: "enumeration-query", InputType: "query", Example: "What are all the vehicles?"},
	{Name: "explanation-query", InputType: "query", Example: "Why is Socrates mortal?"},
}
