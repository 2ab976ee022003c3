package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	domain "github.com/datafloww/insights/internal/domain/reports"
)

// aggregateQuery mirrors the postgres aggregation with MySQL JSON_OBJECTAGG
// and TIMESTAMPDIFF. Window and tenant parameters repeat per subquery since
// the driver has no named placeholders.
const aggregateQuery = `
SELECT
    (SELECT COUNT(*) FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ?) as total_events,
    (SELECT COUNT(DISTINCT e.session_id) FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ?) as total_sessions,
    (SELECT COUNT(DISTINCT e.user_id) FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ?) as total_users,
    (SELECT COUNT(DISTINCT e.anonymous_id) FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ?) as total_anonymous_users,
    (SELECT JSON_OBJECTAGG(t.k, t.c) FROM (SELECT COALESCE(e.event_type,'unknown') k, COUNT(*) c FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ? GROUP BY 1) t) as event_type_distribution,
    (SELECT JSON_OBJECTAGG(t.k, t.c) FROM (SELECT COALESCE(e.browser,'unknown') k, COUNT(*) c FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ? GROUP BY 1) t) as browser_distribution,
    (SELECT JSON_OBJECTAGG(t.k, t.c) FROM (SELECT COALESCE(e.os,'unknown') k, COUNT(*) c FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ? GROUP BY 1) t) as os_distribution,
    (SELECT JSON_OBJECTAGG(t.k, t.c) FROM (SELECT COALESCE(e.device_type,'unknown') k, COUNT(*) c FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ? GROUP BY 1) t) as device_distribution,
    (SELECT JSON_OBJECTAGG(t.k, t.c) FROM (SELECT COALESCE(e.path,'unknown') k, COUNT(*) c FROM events e WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ? GROUP BY 1) t) as path_distribution,
    (SELECT AVG(TIMESTAMPDIFF(SECOND, s.first_seen, s.last_seen))
     FROM events e
     LEFT JOIN sessions s ON e.session_id = s.id
     WHERE e.created_at BETWEEN ? AND ? AND e.client_id = ?) as avg_session_duration;`

// MetricsRepository runs the fixed aggregation; MySQL counterpart of the
// postgres adapter for the same port.
type MetricsRepository struct {
	db *sql.DB
}

func NewMetricsRepository(db *sql.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

func (r *MetricsRepository) Aggregate(ctx context.Context, tenantID string, start, end time.Time) (*domain.MetricsSnapshot, error) {
	args := make([]any, 0, 30)
	for i := 0; i < 10; i++ {
		args = append(args, start, end, tenantID)
	}
	row := r.db.QueryRowContext(ctx, aggregateQuery, args...)

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
