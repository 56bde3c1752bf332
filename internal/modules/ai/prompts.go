package ai

const (
	summarySystemPrompt = "You are an assistant that summarizes user-written notes. Keep it short and clear."
	summaryUserPrefix   = "Please summarize this beautifully:\n\n"
)

// buildSummaryPrompt wraps the note content in the fixed instructional
// prompt. The wording and sampling parameters are configuration-owned,
// never user-controlled.
func buildSummaryPrompt(content string) (systemPrompt string, prompt string) {
	return summarySystemPrompt, summaryUserPrefix + content
}
