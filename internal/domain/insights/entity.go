package insights

import "strings"

// Question is a free-text analytics question scoped to one tenant.
// Immutable input to the pipeline.
type Question struct {
	Text     string `json:"question"`
	TenantID string `json:"tenant_id"`
}

// GeneratedQuery is the SQL produced by the synthesizer. It must be a single
// read-only statement restricted to the asking tenant before it may execute.
type GeneratedQuery struct {
	SQL string `json:"query"`
}

// QueryResult holds the executed rows serialized to compact JSON,
// ready to be embedded in a follow-up prompt. Consumed once.
type QueryResult struct {
	Serialized string
}

// Empty reports whether the result carries no rows. Matches the serialized
// forms "[]" and "{}" after trimming whitespace.
func (r QueryResult) Empty() bool {
	s := strings.TrimSpace(r.Serialized)
	return s == "" || s == "[]" || s == "{}"
}

// Answer is the terminal artifact of the pipeline. Not persisted.
type Answer struct {
	Text string `json:"answer"`
}
