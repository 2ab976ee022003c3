package prompt

import "fmt"

// QuerySystemPrompt provides strict directions and the output schema for
// query synthesis. The model must answer with one JSON object holding a
// single field, "query".
func QuerySystemPrompt(dialect string, topK int) string {
	return fmt.Sprintf(`You are a %s expert. Given an input question, create a syntactically correct %s query to run to help find the answer.

Rules:
- Unless the user specifies a specific number of results, always limit the query to at most %d results.
- You can order the results by a relevant column to return the most interesting examples.
- Never query for all the columns from a table; only select the columns needed to answer the question.
- Only use column names that appear in the schema description below. Be careful not to query for columns that do not exist.
- Pay attention to which column is in which table.
- Generate a single read-only SELECT statement. Never generate INSERT, UPDATE, DELETE, DROP or ALTER statements.
- Always restrict rows to the client_id given with the question.

Output must be a single valid JSON object only (no markdown, no commentary, no code fences) with this schema:
{"query": "<syntactically valid SQL query>"}`, dialect, dialect, topK)
}

// QueryUserPrompt embeds the schema context and the question augmented with
// the tenant qualifier.
func QueryUserPrompt(schema, question, tenantID string) string {
	return fmt.Sprintf("Database schema:\n%s\n\nQuestion: %s (for client_id: %s)", schema, question, tenantID)
}
