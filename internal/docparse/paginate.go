package docparse

import "strings"

// DefaultPageTokens is the target size of a synthetic page for formats
// without real page boundaries.
const DefaultPageTokens = 450

// Paginate groups paragraphs into synthetic pages of roughly targetTokens
// each. A paragraph is never split across pages. Page numbers are 1-based
// with no gaps.
func Paginate(paragraphs []string, targetTokens int) []Page {
	if targetTokens <= 0 {
		targetTokens = DefaultPageTokens
	}

	var (
		pages   []Page
		current strings.Builder
		tokens  int
	)

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			pages = append(pages, Page{Number: len(pages) + 1, Text: text})
		}
		current.Reset()
		tokens = 0
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		paraTokens := estimateTokens(para)
		if tokens > 0 && tokens+paraTokens > targetTokens {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
		tokens += paraTokens
	}
	flush()

	return pages
}

// estimateTokens gives a rough token count using a words-based heuristic.
// Exact tokenization is not required for pagination.
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
