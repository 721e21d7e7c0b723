package agent

import (
	"strings"

	"github.com/Preetham2702/ClauseBot/internal/llm"
)

// FallbackAnswer is the exact sentence returned whenever the lease does not
// clearly support an answer. The UI relies on this literal text.
const FallbackAnswer = "Not clearly specified in the lease."

const systemPrompt = `You are ClauseBot, a friendly legal assistant.
Answer questions using ONLY the lease content the user provides.
If the lease does not clearly say it, reply: "` + FallbackAnswer + `"
No headings, no labels, no markdown.`

const analysisSystemPrompt = "You are a careful legal assistant for lease agreements. You do not guess or hallucinate."

// PromptConfig bounds prompt construction.
type PromptConfig struct {
	// MaxDocumentChars caps the lease text embedded in a prompt.
	MaxDocumentChars int
	// MaxHistoryTokens caps prior turns included in an ask prompt. When the
	// estimate exceeds it, oldest turns are dropped first.
	MaxHistoryTokens int
}

func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		MaxDocumentChars: 20000,
		MaxHistoryTokens: 6000,
	}
}

func (c PromptConfig) withDefaults() PromptConfig {
	if c.MaxDocumentChars <= 0 {
		c.MaxDocumentChars = 20000
	}
	if c.MaxHistoryTokens <= 0 {
		c.MaxHistoryTokens = 6000
	}
	return c
}

// BuildAskPrompt turns a question, optional lease text and prior history into
// an ordered prompt. It is deterministic: no randomness, no side effects.
// History order is preserved; when the token ceiling is exceeded the oldest
// turns are dropped first, never the most recent.
func BuildAskPrompt(question, documentText string, history []Turn, cfg PromptConfig) []llm.Message {
	cfg = cfg.withDefaults()

	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}

	for _, t := range capHistory(history, cfg.MaxHistoryTokens) {
		messages = append(messages, llm.Message{Role: string(t.Role), Content: t.Content})
	}

	var sb strings.Builder
	if documentText != "" {
		sb.WriteString("--- LEASE START ---\n")
		sb.WriteString(truncateDocument(documentText, cfg.MaxDocumentChars))
		sb.WriteString("\n--- LEASE END ---\n\n")
	} else {
		sb.WriteString("No lease text is available for this question. ")
		sb.WriteString("Unless the answer is clearly supported by lease content already in this conversation, ")
		sb.WriteString(`reply with exactly: "` + FallbackAnswer + "\"\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(strings.TrimSpace(question))

	return append(messages, llm.Message{Role: llm.RoleUser, Content: sb.String()})
}

// BuildAnalysisPrompt builds the whole-document structured analysis prompt.
// It never includes conversation history: analysis is independent of the chat.
func BuildAnalysisPrompt(documentText string, cfg PromptConfig) []llm.Message {
	cfg = cfg.withDefaults()

	var sb strings.Builder
	sb.WriteString("You are an expert legal assistant helping a tenant understand a residential or commercial lease.\n\n")
	sb.WriteString("Here is the lease text:\n\n--- LEASE START ---\n")
	sb.WriteString(truncateDocument(documentText, cfg.MaxDocumentChars))
	sb.WriteString("\n--- LEASE END ---\n\n")
	sb.WriteString(`Your job:

1. Give a short, clear summary of what this lease is about (2-4 sentences).
2. List the most important PROS for the tenant (good things / protections / benefits).
3. List the most important CONS / RISKS / RED FLAGS for the tenant (fees, penalties, strict rules, one-sided terms, etc.).
4. List any KEY THINGS THE TENANT SHOULD KNOW, such as notice periods, automatic renewals, early termination rules, maintenance responsibilities, penalties for late payment, unusual or harsh clauses.

Very important:
- Be precise and do NOT invent terms that are not clearly supported by the text.
- If something is unclear or missing, say that it is not clearly specified.
- Focus on the tenant's point of view.

Respond in valid JSON ONLY, in this exact format:

{
  "summary": "short summary here",
  "pros": ["item 1", "item 2"],
  "cons": ["item 1", "item 2"],
  "important_points": ["item 1", "item 2"]
}`)

	return []llm.Message{
		{Role: llm.RoleSystem, Content: analysisSystemPrompt},
		{Role: llm.RoleUser, Content: sb.String()},
	}
}

func truncateDocument(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}

// capHistory returns a suffix of history whose estimated token count fits
// under maxTokens. The store itself is never mutated.
func capHistory(history []Turn, maxTokens int) []Turn {
	total := 0
	for _, t := range history {
		total += estimateTokens(t.Content)
	}
	start := 0
	for start < len(history) && total > maxTokens {
		total -= estimateTokens(history[start].Content)
		start++
	}
	return history[start:]
}

// estimateTokens gives a rough token count; exact tokenization is not
// required for capping.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
