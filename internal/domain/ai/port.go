package ai

import "context"

// LanguageModel is the port for a stateless, single-shot generation capability.
// One call per invocation; implementations hold no conversation state.
type LanguageModel interface {
	// Generate returns free-form text for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateJSON returns a single JSON object following the contract
	// described by the system prompt.
	GenerateJSON(ctx context.Context, system, user string) (string, error)
}
