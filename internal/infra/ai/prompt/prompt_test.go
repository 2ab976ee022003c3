package prompt

import (
	"strings"
	"testing"
)

func TestQuerySystemPrompt(t *testing.T) {
	got := QuerySystemPrompt("postgres", 10)

	if !strings.HasPrefix(got, "You are a postgres expert.") {
		t.Errorf("prompt does not open with dialect identity: %q", got[:60])
	}
	for _, want := range []string{
		"at most 10 results",
		"single read-only SELECT statement",
		"restrict rows to the client_id",
		`{"query": "<syntactically valid SQL query>"}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestQueryUserPromptAppendsTenantQualifier(t *testing.T) {
	got := QueryUserPrompt("Table: events\n", "How many visitors?", "tenant-a")

	if !strings.Contains(got, "Database schema:\nTable: events\n") {
		t.Errorf("schema context missing: %q", got)
	}
	if !strings.HasSuffix(got, "Question: How many visitors? (for client_id: tenant-a)") {
		t.Errorf("tenant qualifier must close the prompt: %q", got)
	}
}

func TestDataAnswerPromptEmbedsResult(t *testing.T) {
	got := DataAnswerPrompt("How many visitors?", `[{"count":42}]`)

	if !strings.Contains(got, "User Data Insights:\n[{\"count\":42}]") {
		t.Errorf("result payload missing: %q", got)
	}
	if !strings.Contains(got, "Focuses exclusively on the user's data") {
		t.Errorf("data-grounding instruction missing")
	}
}

func TestEmptyAnswerPromptHasNoResultSlot(t *testing.T) {
	got := EmptyAnswerPrompt("How many visitors?")

	if strings.Contains(got, "User Data Insights") {
		t.Errorf("empty branch must not carry a data section")
	}
	if !strings.Contains(got, "brief, simple response") {
		t.Errorf("conversational instruction missing")
	}
	if !strings.Contains(got, "Question: How many visitors?") {
		t.Errorf("question missing")
	}
}

func TestAnswerPromptsShareAssistantIdentity(t *testing.T) {
	identity := "Datafloww Analytics"
	if !strings.Contains(EmptyAnswerPrompt("q"), identity) {
		t.Errorf("empty prompt missing assistant identity")
	}
	if !strings.Contains(DataAnswerPrompt("q", "[]"), identity) {
		t.Errorf("data prompt missing assistant identity")
	}
}

func TestAnalysisSystemPromptSectionOrder(t *testing.T) {
	got := AnalysisSystemPrompt()

	sections := []string{
		"# Analytics Report",
		"## Executive Summary",
		"## Key Metrics",
		"### Traffic Metrics",
		"#### Browser Distribution",
		"#### Operating Systems",
		"#### Device Types",
		"## Detailed Analysis",
		"## Trend Analysis",
		"## Actionable Recommendations",
		"## Future Predictions",
		"## Technical Notes",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(got, s)
		if idx < 0 {
			t.Fatalf("template missing section %q", s)
		}
		if idx < last {
			t.Fatalf("section %q out of order", s)
		}
		last = idx
	}

	if !strings.Contains(got, "always use 2 decimal places for percentages") {
		t.Errorf("percentage formatting rule missing")
	}
	if !strings.Contains(got, EventSchemaJSON()) {
		t.Errorf("event schema not embedded in analysis prompt")
	}
}

func TestAnalysisUserPrompt(t *testing.T) {
	got := AnalysisUserPrompt("2024-02-01", "2024-02-29", `{"total_events": 100}`, PriorPeriodUnavailable)

	for _, want := range []string{
		"2024-02-01",
		"2024-02-29",
		`{"total_events": 100}`,
		"growth metrics are not available",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestEventSchemaEmbeddedInAssistantPrompt(t *testing.T) {
	got := AssistantSystemPrompt()
	for _, field := range []string{"geo", "scrollDepth", "viewportSize", "referrer"} {
		if !strings.Contains(got, field) {
			t.Errorf("assistant prompt missing event schema field %q", field)
		}
	}
}
