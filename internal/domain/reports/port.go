package reports

import (
	"context"
	"time"
)

// MetricsSource port: runs the fixed aggregation for one tenant and window.
type MetricsSource interface {
	Aggregate(ctx context.Context, tenantID string, start, end time.Time) (*MetricsSnapshot, error)
}

// Archive port: stores a rendered report and returns its location.
type Archive interface {
	Store(ctx context.Context, key string, body []byte) (string, error)
}
