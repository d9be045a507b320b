package schema

// Result is the outcome of asking for a schema: Available or NotBuilt.
type Result interface {
	schemaResult()
}

// Available carries a built schema.
type Available struct {
	Schema *AnalysisSchema
}

// NotBuilt means no schema applies to the target. It is an expected outcome,
// not an error.
type NotBuilt struct {
	Reason string
}

func (Available) schemaResult() {}
func (NotBuilt) schemaResult()  {}
