package insights

import "context"

// QueryStore port: executes a read query against the analytics database.
type QueryStore interface {
	Query(ctx context.Context, query string) ([]map[string]any, error)
}

// SchemaProvider port: supplies table/column/key metadata for the target
// database in a form suitable to inform query synthesis.
type SchemaProvider interface {
	Describe(ctx context.Context) (string, error)
}
