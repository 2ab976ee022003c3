package reports

import (
	"fmt"
	"sort"
)

// Distribution is a frequency count keyed by category value
// (event type, browser, OS, device type, path).
type Distribution map[string]int64

// Total returns the sum of all counts.
func (d Distribution) Total() int64 {
	var total int64
	for _, c := range d {
		total += c
	}
	return total
}

// Share is one category of a distribution with its pre-formatted percentage.
type Share struct {
	Key     string
	Count   int64
	Percent string // always two decimals, e.g. "70.00%"
}

// Shares returns the distribution ordered by count descending (ties broken by
// key) with percentages formatted to exactly two decimal places.
func (d Distribution) Shares() []Share {
	total := d.Total()
	out := make([]Share, 0, len(d))
	for k, c := range d {
		out = append(out, Share{Key: k, Count: c, Percent: FormatPercent(c, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// FormatPercent renders part/total as a percentage with exactly two decimals.
// A zero total renders as "0.00%".
func FormatPercent(part, total int64) string {
	if total <= 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

// MetricsSnapshot is the aggregated activity of one tenant over a date range.
// Field names mirror the aggregation columns so the serialized snapshot reads
// naturally inside the rendering prompt.
type MetricsSnapshot struct {
	TotalEvents         int64        `json:"total_events"`
	TotalSessions       int64        `json:"total_sessions"`
	TotalUsers          int64        `json:"total_users"`
	TotalAnonymousUsers int64        `json:"total_anonymous_users"`
	AvgSessionSeconds   float64      `json:"avg_session_duration_seconds"`
	EventTypes          Distribution `json:"event_type_distribution"`
	Browsers            Distribution `json:"browser_distribution"`
	OperatingSystems    Distribution `json:"os_distribution"`
	DeviceTypes         Distribution `json:"device_distribution"`
	Paths               Distribution `json:"path_distribution"`
}

// AnalysisReport is the rendered narrative for one tenant and period.
type AnalysisReport struct {
	Markdown  string `json:"report"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
