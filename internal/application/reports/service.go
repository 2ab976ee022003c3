package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datafloww/insights/internal/domain/ai"
	domain "github.com/datafloww/insights/internal/domain/reports"
	"github.com/datafloww/insights/internal/infra/ai/prompt"
)

// DateLayout is the wire format for report period boundaries.
const DateLayout = "2006-01-02"

// Service generates the narrative analysis report for one tenant and period:
// aggregate -> narrate, single shot. Safe for concurrent use.
type Service struct {
	Model   ai.LanguageModel
	Metrics domain.MetricsSource

	// Archive stores rendered reports for later retrieval. Optional;
	// archival failure never fails the request.
	Archive domain.Archive

	// StageTimeout bounds each suspension point (aggregation, model call) when > 0.
	StageTimeout time.Duration
}

// Generate aggregates the tenant's metrics for [start, end] plus the
// preceding equal-length window, then renders the fixed-template narrative.
// Aggregation failure and rendering failure are both fatal; there is no
// partial report.
func (s *Service) Generate(ctx context.Context, tenantID string, start, end time.Time) (*domain.AnalysisReport, error) {
	current, err := s.aggregate(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate tenant=%s: %w", domain.ErrAggregation, tenantID, err)
	}

	// Prior window of the same length, ending where this one starts.
	length := end.Sub(start)
	prior, err := s.aggregate(ctx, tenantID, start.Add(-length), start)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregate prior period tenant=%s: %w", domain.ErrAggregation, tenantID, err)
	}

	startDate := start.Format(DateLayout)
	endDate := end.Format(DateLayout)
	p := prompt.AnalysisUserPrompt(startDate, endDate, dataSummary(current), priorSummary(prior, start.Add(-length), start))

	sctx, cancel := s.stageContext(ctx)
	defer cancel()
	markdown, err := s.Model.Generate(sctx, p)
	if err != nil {
		return nil, fmt.Errorf("%w: render tenant=%s: %w", domain.ErrRender, tenantID, err)
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, fmt.Errorf("%w: render tenant=%s: model returned empty report", domain.ErrRender, tenantID)
	}

	s.archive(ctx, tenantID, markdown)

	return &domain.AnalysisReport{
		Markdown:  markdown,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

func (s *Service) aggregate(ctx context.Context, tenantID string, start, end time.Time) (*domain.MetricsSnapshot, error) {
	sctx, cancel := s.stageContext(ctx)
	defer cancel()
	return s.Metrics.Aggregate(sctx, tenantID, start, end)
}

// dataSummary serializes the snapshot and appends the pre-computed
// distribution percentages, so the narrative always has real numbers to cite.
// Percentages use exactly two decimals per the template contract.
func dataSummary(m *domain.MetricsSnapshot) string {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		b = []byte("{}")
	}

	var sb strings.Builder
	sb.Write(b)
	sb.WriteString("\n\nComputed distribution percentages (use these exact values):\n")
	writeShares(&sb, "Event types", m.EventTypes)
	writeShares(&sb, "Browsers", m.Browsers)
	writeShares(&sb, "Operating systems", m.OperatingSystems)
	writeShares(&sb, "Device types", m.DeviceTypes)
	writeShares(&sb, "Paths", m.Paths)
	fmt.Fprintf(&sb, "Average session duration: %.2f seconds (%.2f minutes)\n",
		m.AvgSessionSeconds, m.AvgSessionSeconds/60)
	return sb.String()
}

func writeShares(sb *strings.Builder, label string, d domain.Distribution) {
	if len(d) == 0 {
		fmt.Fprintf(sb, "%s: no data\n", label)
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, s := range d.Shares() {
		fmt.Fprintf(sb, "- %s: %s (%d)\n", s.Key, s.Percent, s.Count)
	}
}

// priorSummary renders the prior-period comparison block, or the
// "not available" instruction when the preceding window saw no events.
func priorSummary(prior *domain.MetricsSnapshot, start, end time.Time) string {
	if prior == nil || prior.TotalEvents == 0 {
		return prompt.PriorPeriodUnavailable
	}
	b, err := json.MarshalIndent(prior, "", "  ")
	if err != nil {
		return prompt.PriorPeriodUnavailable
	}
	return fmt.Sprintf("Previous period %s to %s summary:\n%s",
		start.Format(DateLayout), end.Format(DateLayout), b)
}

// archive stores the rendered markdown under reports/<tenant>/<uuid>.md.
// Best effort only.
func (s *Service) archive(ctx context.Context, tenantID, markdown string) {
	if s.Archive == nil {
		return
	}
	key := fmt.Sprintf("reports/%s/%s.md", tenantID, uuid.New().String())
	url, err := s.Archive.Store(ctx, key, []byte(markdown))
	if err != nil {
		log.Printf("report archive failed: tenant=%s key=%s err=%v", tenantID, key, err)
		return
	}
	log.Printf("report archived: tenant=%s url=%s", tenantID, url)
}

func (s *Service) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StageTimeout)
}
