// Package annotate maps analysis items back to source pages so the UI can
// overlay colored tags per page. Attribution is heuristic: an item is
// assigned to the page whose text shares the most significant words with it.
package annotate

import (
	"strings"
	"unicode"

	"github.com/Preetham2702/ClauseBot/internal/agent"
	"github.com/Preetham2702/ClauseBot/internal/docparse"
)

// Tag is one highlight label from the fixed vocabulary.
type Tag string

const (
	TagSummary         Tag = "summary"
	TagPros            Tag = "pros"
	TagCons            Tag = "cons"
	TagImportantPoints Tag = "important_points"
)

// tagOrder fixes the order tags appear in per page.
var tagOrder = []Tag{TagSummary, TagPros, TagCons, TagImportantPoints}

const minWordLen = 4

// Attribute returns a dense 1-based page-to-tag-set mapping for the given
// pages. Every page number appears in the result; pages with no attributed
// items map to an empty set. The summary, when present, tags the first page.
func Attribute(pages []docparse.Page, result agent.AnalysisResult) map[int][]Tag {
	tagged := make(map[int]map[Tag]bool, len(pages))
	for _, p := range pages {
		tagged[p.Number] = make(map[Tag]bool)
	}
	if len(pages) == 0 {
		return map[int][]Tag{}
	}

	pageWords := make([]map[string]bool, len(pages))
	for i, p := range pages {
		pageWords[i] = wordSet(p.Text)
	}

	if strings.TrimSpace(result.Summary) != "" {
		tagged[pages[0].Number][TagSummary] = true
	}

	assign := func(items []string, tag Tag) {
		for _, item := range items {
			if best, ok := bestPage(item, pageWords); ok {
				tagged[pages[best].Number][tag] = true
			}
		}
	}
	assign(result.Pros, TagPros)
	assign(result.Cons, TagCons)
	assign(result.ImportantPoints, TagImportantPoints)

	out := make(map[int][]Tag, len(pages))
	for _, p := range pages {
		tags := []Tag{}
		for _, t := range tagOrder {
			if tagged[p.Number][t] {
				tags = append(tags, t)
			}
		}
		out[p.Number] = tags
	}
	return out
}

// bestPage returns the index of the page sharing the most significant words
// with the item. Ties resolve to the earliest page; zero overlap means no
// attribution.
func bestPage(item string, pageWords []map[string]bool) (int, bool) {
	itemWords := wordSet(item)
	bestIdx, bestScore := 0, 0
	for i, words := range pageWords {
		score := 0
		for w := range itemWords {
			if words[w] {
				score++
			}
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore > 0
}

func wordSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) >= minWordLen {
			set[w] = true
		}
	}
	return set
}
