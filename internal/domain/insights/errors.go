package insights

import "errors"

var (
	// ErrSynthesis: the language model could not produce a parseable query description.
	ErrSynthesis = errors.New("query synthesis failed")

	// ErrUnsafeQuery: the synthesized query is mutating, multi-statement,
	// or not restricted to the asking tenant.
	ErrUnsafeQuery = errors.New("unsafe generated query")

	// ErrExecution: the underlying store rejected the query.
	ErrExecution = errors.New("query execution failed")

	// ErrComposition: the language model failed while composing the answer.
	ErrComposition = errors.New("answer composition failed")
)
