package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	domai "github.com/datafloww/insights/internal/domain/ai"
	insights "github.com/datafloww/insights/internal/domain/insights"
	reports "github.com/datafloww/insights/internal/domain/reports"
	"github.com/datafloww/insights/internal/middleware"
)

// InsightsService answers tenant-scoped questions.
type InsightsService interface {
	Ask(ctx context.Context, q insights.Question) (insights.Answer, error)
}

// ReportService generates the narrative analysis report.
type ReportService interface {
	Generate(ctx context.Context, tenantID string, start, end time.Time) (*reports.AnalysisReport, error)
}

type Router struct {
	insightsSvc InsightsService
	reportSvc   ReportService
	schema      insights.SchemaProvider
}

// NewRouter builds the public API surface. allowOrigin restricts CORS to one
// origin; empty means any.
func NewRouter(insightsSvc InsightsService, reportSvc ReportService, schema insights.SchemaProvider, allowOrigin string) http.Handler {
	rt := &Router{insightsSvc: insightsSvc, reportSvc: reportSvc, schema: schema}
	mux := chi.NewRouter()

	if allowOrigin == "" {
		allowOrigin = "*"
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.Get("/api/schema", rt.wrap(rt.handleSchema))
	mux.Post("/chat/completions", rt.wrap(rt.handleChat))
	mux.Post("/api/analysis", rt.wrap(rt.handleAnalysis))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
	mux.NotFound(notFound)
	mux.MethodNotAllowed(notFound)

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError carries a caller-safe message alongside the real cause.
// The cause goes to the log, never to the response body.
type httpError struct {
	status  int
	message string
	cause   error
}

func (e *httpError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.message
}

func (e *httpError) Unwrap() error { return e.cause }

func badRequest(message string) *httpError {
	return &httpError{status: http.StatusBadRequest, message: message}
}

// wrap converts handler errors to the uniform {"error": ...} body. Internal
// failures always map to a generic message; synthesized SQL and store errors
// must not leak to callers.
func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		log.Printf("request failed: method=%s path=%s err=%v", req.Method, req.URL.Path, err)

		var he *httpError
		switch {
		case errors.As(err, &he):
			writeError(w, he.status, he.message)
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "AI quota exceeded, please try again later")
		case errors.Is(err, insights.ErrSynthesis),
			errors.Is(err, insights.ErrUnsafeQuery),
			errors.Is(err, insights.ErrExecution),
			errors.Is(err, insights.ErrComposition):
			writeError(w, http.StatusInternalServerError, "Failed to process request")
		case errors.Is(err, reports.ErrAggregation), errors.Is(err, reports.ErrRender):
			writeError(w, http.StatusInternalServerError, "Failed to generate analysis report")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
	}
}

// GET /api/schema
func (rt *Router) handleSchema(w http.ResponseWriter, req *http.Request) error {
	schema, err := rt.schema.Describe(req.Context())
	if err != nil {
		return &httpError{status: http.StatusInternalServerError, message: "Failed to fetch database schema", cause: err}
	}
	return writeJSON(w, http.StatusOK, map[string]string{"schema": schema})
}

// POST /chat/completions
// Body: {"messages": [{"content": "..."}, ...], "user_id": "<tenant>"}
// The content of the last message is the question.
func (rt *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("Invalid JSON request body")
	}
	if len(body.Messages) == 0 || body.Messages[len(body.Messages)-1].Content == "" {
		return badRequest("Missing 'messages' property in request body")
	}
	if body.UserID == "" {
		return badRequest("Missing 'user_id' property in request body")
	}
	if err := middleware.ValidateTenantID(body.UserID); err != nil {
		return badRequest(err.Error())
	}

	question := insights.Question{
		Text:     body.Messages[len(body.Messages)-1].Content,
		TenantID: body.UserID,
	}
	answer, err := rt.insightsSvc.Ask(req.Context(), question)
	if err != nil {
		return err
	}
	middleware.IncrementQuestions()

	return writeJSON(w, http.StatusOK, map[string]string{
		"question": question.Text,
		"answer":   answer.Text,
	})
}

// POST /api/analysis
// Body: {"startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "client_id": "<tenant>"}
func (rt *Router) handleAnalysis(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		ClientID  string `json:"client_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("Invalid JSON request body")
	}
	if body.StartDate == "" || body.EndDate == "" || body.ClientID == "" {
		return badRequest("Missing required fields: startDate, endDate, client_id")
	}
	if err := middleware.ValidateTenantID(body.ClientID); err != nil {
		return badRequest(err.Error())
	}
	start, end, err := middleware.ValidateDateRange(body.StartDate, body.EndDate)
	if err != nil {
		return badRequest(err.Error())
	}

	report, err := rt.reportSvc.Generate(req.Context(), body.ClientID, start, end)
	if err != nil {
		return err
	}
	middleware.IncrementReports()

	return writeJSON(w, http.StatusOK, map[string]string{
		"report":    report.Markdown,
		"startDate": body.StartDate,
		"endDate":   body.EndDate,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, map[string]string{"error": message})
}
