package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/datafloww/insights/internal/domain/ai"
	domain "github.com/datafloww/insights/internal/domain/insights"
	"github.com/datafloww/insights/internal/infra/ai/prompt"
)

// topK bounds the number of rows a synthesized query may return.
const topK = 10

// Service implements the question-answering pipeline:
// synthesize -> validate -> execute -> compose. One pass, no retries;
// a failed stage surfaces upward. Safe for concurrent use.
type Service struct {
	Model  ai.LanguageModel
	Store  domain.QueryStore
	Schema domain.SchemaProvider

	// Dialect names the SQL flavor in the synthesis prompt, e.g. "postgres".
	Dialect string

	// StageTimeout bounds each suspension point (model call, query) when > 0.
	StageTimeout time.Duration
}

// Ask answers a tenant-scoped analytics question. The stages run strictly in
// order; no entity created here outlives the call.
func (s *Service) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	gen, err := s.synthesize(ctx, q)
	if err != nil {
		return domain.Answer{}, err
	}

	if err := ValidateQuery(gen.SQL, q.TenantID); err != nil {
		return domain.Answer{}, fmt.Errorf("validate tenant=%s: %w", q.TenantID, err)
	}

	res, err := s.execute(ctx, gen)
	if err != nil {
		return domain.Answer{}, err
	}

	return s.compose(ctx, q, res)
}

// synthesize builds a tenant-qualified prompt around the schema context and
// asks the model for a single {"query": ...} object.
func (s *Service) synthesize(ctx context.Context, q domain.Question) (domain.GeneratedQuery, error) {
	dctx, dcancel := s.stageContext(ctx)
	schema, err := s.Schema.Describe(dctx)
	dcancel()
	if err != nil {
		return domain.GeneratedQuery{}, fmt.Errorf("%w: synthesize tenant=%s: schema context: %v", domain.ErrSynthesis, q.TenantID, err)
	}

	sctx, cancel := s.stageContext(ctx)
	defer cancel()

	raw, err := s.Model.GenerateJSON(sctx,
		prompt.QuerySystemPrompt(s.dialect(), topK),
		prompt.QueryUserPrompt(schema, q.Text, q.TenantID),
	)
	if err != nil {
		return domain.GeneratedQuery{}, fmt.Errorf("%w: synthesize tenant=%s: %w", domain.ErrSynthesis, q.TenantID, err)
	}

	var gen domain.GeneratedQuery
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return domain.GeneratedQuery{}, fmt.Errorf("%w: synthesize tenant=%s: unparseable model output: %v", domain.ErrSynthesis, q.TenantID, err)
	}
	if strings.TrimSpace(gen.SQL) == "" {
		return domain.GeneratedQuery{}, fmt.Errorf("%w: synthesize tenant=%s: model returned no query", domain.ErrSynthesis, q.TenantID)
	}
	return gen, nil
}

// execute delegates the validated query verbatim to the store and serializes
// the rows to compact JSON. No rewriting happens here.
func (s *Service) execute(ctx context.Context, gen domain.GeneratedQuery) (domain.QueryResult, error) {
	sctx, cancel := s.stageContext(ctx)
	defer cancel()

	rows, err := s.Store.Query(sctx, gen.SQL)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("%w: %w", domain.ErrExecution, err)
	}
	if len(rows) == 0 {
		return domain.QueryResult{Serialized: "[]"}, nil
	}

	b, err := json.Marshal(rows)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("%w: serialize rows: %v", domain.ErrExecution, err)
	}
	return domain.QueryResult{Serialized: string(b)}, nil
}

// compose produces the final answer. Empty results take the conversational
// branch, whose prompt carries no result payload at all.
func (s *Service) compose(ctx context.Context, q domain.Question, res domain.QueryResult) (domain.Answer, error) {
	var p string
	if res.Empty() {
		p = prompt.EmptyAnswerPrompt(q.Text)
	} else {
		p = prompt.DataAnswerPrompt(q.Text, res.Serialized)
	}

	sctx, cancel := s.stageContext(ctx)
	defer cancel()

	text, err := s.Model.Generate(sctx, p)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: compose tenant=%s: %w", domain.ErrComposition, q.TenantID, err)
	}
	return domain.Answer{Text: text}, nil
}

func (s *Service) dialect() string {
	if s.Dialect == "" {
		return "postgres"
	}
	return s.Dialect
}

func (s *Service) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.StageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.StageTimeout)
}
