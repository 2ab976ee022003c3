package middleware

import (
	"strings"
	"testing"
	"time"
)

func TestValidateTenantID(t *testing.T) {
	valid := []string{"tenant-a", "t1", "client_42", "A", strings.Repeat("x", 64)}
	for _, id := range valid {
		if err := ValidateTenantID(id); err != nil {
			t.Errorf("ValidateTenantID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{
		"",
		"bad tenant",
		"tenant;DROP TABLE events",
		"tenant'--",
		strings.Repeat("x", 65),
		"тенант",
	}
	for _, id := range invalid {
		if err := ValidateTenantID(id); err == nil {
			t.Errorf("ValidateTenantID(%q) = nil, want error", id)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	start, end, err := ValidateDateRange("2024-02-01", "2024-02-29")
	if err != nil {
		t.Fatalf("ValidateDateRange() error = %v", err)
	}
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

func TestValidateDateRangeSameDay(t *testing.T) {
	if _, _, err := ValidateDateRange("2024-02-01", "2024-02-01"); err != nil {
		t.Errorf("same-day window should be valid, got %v", err)
	}
}

func TestValidateDateRangeRejects(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"bad start", "Feb 1 2024", "2024-02-29"},
		{"bad end", "2024-02-01", "29/02/2024"},
		{"inverted", "2024-03-01", "2024-02-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ValidateDateRange(tt.start, tt.end); err == nil {
				t.Errorf("ValidateDateRange(%q, %q) = nil, want error", tt.start, tt.end)
			}
		})
	}
}
