package reports

import "errors"

var (
	// ErrAggregation: the aggregation query failed. Fatal to the request, no partial report.
	ErrAggregation = errors.New("metrics aggregation failed")

	// ErrRender: the language model invocation failed. No report without narrative.
	ErrRender = errors.New("report rendering failed")
)
