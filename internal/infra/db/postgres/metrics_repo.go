package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/datafloww/insights/internal/domain/reports"
)

// aggregateQuery is the one fixed aggregation behind report generation.
// Everything is scoped by tenant and window; the distributions come back as
// jsonb objects keyed by category.
const aggregateQuery = `
WITH event_counts AS (
    SELECT
        COALESCE(e.event_type, 'unknown') as event_type,
        COALESCE(e.browser, 'unknown') as browser,
        COALESCE(e.os, 'unknown') as os,
        COALESCE(e.device_type, 'unknown') as device_type,
        COALESCE(e.path, 'unknown') as path,
        COUNT(*) as count
    FROM events e
    WHERE
        e.created_at BETWEEN $1 AND $2
        AND e.client_id = $3
    GROUP BY e.event_type, e.browser, e.os, e.device_type, e.path
)
SELECT
    (SELECT COUNT(*) FROM events e WHERE e.created_at BETWEEN $1 AND $2 AND e.client_id = $3) as total_events,
    (SELECT COUNT(DISTINCT e.session_id) FROM events e WHERE e.created_at BETWEEN $1 AND $2 AND e.client_id = $3) as total_sessions,
    (SELECT COUNT(DISTINCT e.user_id) FROM events e WHERE e.created_at BETWEEN $1 AND $2 AND e.client_id = $3) as total_users,
    (SELECT COUNT(DISTINCT e.anonymous_id) FROM events e WHERE e.created_at BETWEEN $1 AND $2 AND e.client_id = $3) as total_anonymous_users,
    (SELECT jsonb_object_agg(event_type, count) FROM event_counts) as event_type_distribution,
    (SELECT jsonb_object_agg(browser, count) FROM event_counts) as browser_distribution,
    (SELECT jsonb_object_agg(os, count) FROM event_counts) as os_distribution,
    (SELECT jsonb_object_agg(device_type, count) FROM event_counts) as device_distribution,
    (SELECT jsonb_object_agg(path, count) FROM event_counts) as path_distribution,
    (SELECT AVG(EXTRACT(EPOCH FROM (s.last_seen - s.first_seen)))
     FROM events e
     LEFT JOIN sessions s ON e.session_id = s.id
     WHERE e.created_at BETWEEN $1 AND $2 AND e.client_id = $3) as avg_session_duration;`

// MetricsRepository runs the fixed aggregation for report generation.
type MetricsRepository struct {
	db *sql.DB
}

func NewMetricsRepository(db *sql.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// Aggregate returns the tenant's MetricsSnapshot for [start, end].
// Identical inputs against unchanged data yield identical numeric fields.
func (r *MetricsRepository) Aggregate(ctx context.Context, tenantID string, start, end time.Time) (*domain.MetricsSnapshot, error) {
	row := r.db.QueryRowContext(ctx, aggregateQuery, start, end, tenantID)

	var (
		m           domain.MetricsSnapshot
		events      []byte
		browsers    []byte
		oses        []byte
		devices     []byte
		paths       []byte
		avgDuration sql.NullFloat64
	)
	if err := row.Scan(
		&m.TotalEvents, &m.TotalSessions, &m.TotalUsers, &m.TotalAnonymousUsers,
		&events, &browsers, &oses, &devices, &paths,
		&avgDuration,
	); err != nil {
		return nil, err
	}

	var err error
	if m.EventTypes, err = decodeDistribution(events); err != nil {
		return nil, err
	}
	if m.Browsers, err = decodeDistribution(browsers); err != nil {
		return nil, err
	}
	if m.OperatingSystems, err = decodeDistribution(oses); err != nil {
		return nil, err
	}
	if m.DeviceTypes, err = decodeDistribution(devices); err != nil {
		return nil, err
	}
	if m.Paths, err = decodeDistribution(paths); err != nil {
		return nil, err
	}
	if avgDuration.Valid {
		m.AvgSessionSeconds = avgDuration.Float64
	}
	return &m, nil
}

// decodeDistribution unmarshals a jsonb_object_agg column. The column is NULL
// when the window has no events.
func decodeDistribution(raw []byte) (domain.Distribution, error) {
	d := domain.Distribution{}
	if len(raw) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}
