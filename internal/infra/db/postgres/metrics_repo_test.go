package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sql expectations: %v", err)
	}
}

var snapshotColumns = []string{
	"total_events", "total_sessions", "total_users", "total_anonymous_users",
	"event_type_distribution", "browser_distribution", "os_distribution",
	"device_distribution", "path_distribution", "avg_session_duration",
}

func TestAggregateScansSnapshot(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewMetricsRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(aggregateQuery)).
		WithArgs(start, end, "t1").
		WillReturnRows(sqlmock.NewRows(snapshotColumns).AddRow(
			int64(100), int64(40), int64(25), int64(10),
			[]byte(`{"pageview": 80, "click": 20}`),
			[]byte(`{"chrome": 70, "firefox": 30}`),
			[]byte(`{"windows": 60, "macos": 40}`),
			[]byte(`{"desktop": 90, "mobile": 10}`),
			[]byte(`{"/": 50, "/pricing": 50}`),
			float64(92.5),
		))

	m, err := repo.Aggregate(context.Background(), "t1", start, end)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if m.TotalEvents != 100 || m.TotalSessions != 40 || m.TotalUsers != 25 || m.TotalAnonymousUsers != 10 {
		t.Fatalf("counts = %+v", m)
	}
	if m.Browsers["chrome"] != 70 || m.Browsers["firefox"] != 30 {
		t.Fatalf("browsers = %v", m.Browsers)
	}
	if m.Paths["/pricing"] != 50 {
		t.Fatalf("paths = %v", m.Paths)
	}
	if m.AvgSessionSeconds != 92.5 {
		t.Fatalf("avg session = %v", m.AvgSessionSeconds)
	}
	assertSQLMock(t, mock)
}

func TestAggregateEmptyWindow(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewMetricsRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	// jsonb_object_agg and AVG return NULL when the window has no events
	mock.ExpectQuery(regexp.QuoteMeta(aggregateQuery)).
		WithArgs(start, end, "t1").
		WillReturnRows(sqlmock.NewRows(snapshotColumns).AddRow(
			int64(0), int64(0), int64(0), int64(0),
			nil, nil, nil, nil, nil,
			nil,
		))

	m, err := repo.Aggregate(context.Background(), "t1", start, end)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if m.TotalEvents != 0 {
		t.Fatalf("TotalEvents = %d", m.TotalEvents)
	}
	if len(m.Browsers) != 0 || len(m.Paths) != 0 {
		t.Fatalf("distributions should be empty: %+v", m)
	}
	if m.AvgSessionSeconds != 0 {
		t.Fatalf("AvgSessionSeconds = %v", m.AvgSessionSeconds)
	}
	assertSQLMock(t, mock)
}

func TestAggregateQueryError(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewMetricsRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(aggregateQuery)).
		WithArgs(start, end, "t1").
		WillReturnError(errors.New("permission denied"))

	if _, err := repo.Aggregate(context.Background(), "t1", start, end); err == nil {
		t.Fatal("expected error")
	}
	assertSQLMock(t, mock)
}
