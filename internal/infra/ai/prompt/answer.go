package prompt

import "fmt"

// EmptyAnswerPrompt builds the short conversational prompt for questions that
// yielded no rows. The result payload is structurally absent from this
// template; the empty branch must never see tenant data.
func EmptyAnswerPrompt(question string) string {
	return fmt.Sprintf(`%s

Given the following question, provide a brief, simple response:

Question: %s

Please provide a response that:
1. Is short and to the point (1-2 sentences)
2. Uses simple language
3. Is polite but concise
4. Redirects to analytics topics if appropriate`, AssistantSystemPrompt(), question)
}

// DataAnswerPrompt embeds the question and the serialized result rows, and
// instructs the model to answer exclusively from the supplied data.
func DataAnswerPrompt(question, result string) string {
	return fmt.Sprintf(`%s

Given the following analytics question about the user's data, provide a focused response:

Analytics Question: %s

User Data Insights:
%s

Please provide a response that:
1. Focuses exclusively on the user's data
2. Uses their specific metrics and numbers
3. Provides context about their usage
4. Maintains data confidentiality
5. Offers actionable insights for their specific case`, AssistantSystemPrompt(), question, result)
}
