package agent

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
)

// AnalysisResult is the four-section lease breakdown. All fields are always
// present: missing sections come back as empty, never nil, so consumers
// never special-case absent fields.
type AnalysisResult struct {
	Summary         string   `json:"summary"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	ImportantPoints []string `json:"important_points"`

	// ParseFailed is set when the raw model output contained nothing
	// recognizable. Surfaced as data so callers can retry or degrade.
	ParseFailed bool `json:"parse_failed,omitempty"`
}

// ParseFreeform returns the trimmed raw text. Empty or whitespace-only
// output maps to the fallback sentence, never an empty answer.
func ParseFreeform(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return FallbackAnswer
	}
	return trimmed
}

// ParseAnalysis extracts the four sections from raw model text. The model is
// asked for JSON, so strict JSON is tried first; when it emits prose instead,
// a tolerant heading scan takes over. Identical input always yields an
// identical result.
func ParseAnalysis(raw string) AnalysisResult {
	text := stripCodeBlock(raw)

	if strings.HasPrefix(text, "{") {
		var r AnalysisResult
		if err := json.Unmarshal([]byte(text), &r); err == nil {
			r.ParseFailed = false
			return normalize(r)
		}
	}

	return parseSections(text)
}

type section int

const (
	secNone section = iota
	secSummary
	secPros
	secCons
	secImportant
)

// headingKeywords and headingFiller are the whole matching policy: a heading
// line is a keyword word, optionally followed by filler words and punctuation.
var headingKeywords = map[string]section{
	"summary":   secSummary,
	"pro":       secPros,
	"pros":      secPros,
	"con":       secCons,
	"cons":      secCons,
	"risk":      secCons,
	"risks":     secCons,
	"important": secImportant,
}

var headingFiller = map[string]bool{
	"points": true,
	"key":    true,
	"things": true,
	"red":    true,
	"flags":  true,
	"for":    true,
	"the":    true,
	"and":    true,
	"tenant": true,
}

const maxHeadingWords = 6

// parseSections is a line-oriented state machine with an explicit current
// section. Lines before the first heading are ignored; trailing prose that
// follows a blank line inside a list section is treated as boilerplate and
// discarded rather than appended to the section.
func parseSections(text string) AnalysisResult {
	var (
		result       AnalysisResult
		summaryLines []string
		current      = secNone
		blankPending bool
		matchedAny   bool
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			blankPending = true
			continue
		}

		if sec, ok := matchHeading(trimmed); ok {
			current = sec
			matchedAny = true
			blankPending = false
			continue
		}

		switch current {
		case secNone:
			// Preamble or discarded trailer.
		case secSummary:
			summaryLines = append(summaryLines, trimmed)
		default:
			item, hadBullet := stripBullet(trimmed)
			if !hadBullet && blankPending {
				// A fresh paragraph without bullets after a list ended:
				// disclaimer text, not a list item.
				current = secNone
				continue
			}
			if item != "" {
				switch current {
				case secPros:
					result.Pros = append(result.Pros, item)
				case secCons:
					result.Cons = append(result.Cons, item)
				case secImportant:
					result.ImportantPoints = append(result.ImportantPoints, item)
				}
			}
		}
		blankPending = false
	}

	result.Summary = strings.Join(summaryLines, "\n")
	result.ParseFailed = !matchedAny
	return normalize(result)
}

func matchHeading(line string) (section, bool) {
	line = strings.TrimLeft(line, "#*> \t")
	line = strings.TrimRight(line, " :.*-\t")

	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 || len(words) > maxHeadingWords {
		return secNone, false
	}
	sec, ok := headingKeywords[words[0]]
	if !ok {
		return secNone, false
	}
	for _, w := range words[1:] {
		if _, kw := headingKeywords[w]; !kw && !headingFiller[w] {
			return secNone, false
		}
	}
	return sec, true
}

var bulletRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

func stripBullet(line string) (string, bool) {
	if loc := bulletRe.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:]), true
	}
	return strings.TrimSpace(line), false
}

func normalize(r AnalysisResult) AnalysisResult {
	r.Summary = strings.TrimSpace(r.Summary)
	if r.Pros == nil {
		r.Pros = []string{}
	}
	if r.Cons == nil {
		r.Cons = []string{}
	}
	if r.ImportantPoints == nil {
		r.ImportantPoints = []string{}
	}
	return r
}

// FormatAnalysis renders a result back into headed sections. Re-parsing the
// output of FormatAnalysis yields an equal result.
func FormatAnalysis(r AnalysisResult) string {
	var sb strings.Builder
	sb.WriteString("Summary:\n")
	if r.Summary != "" {
		sb.WriteString(r.Summary)
		sb.WriteString("\n")
	}
	writeSection := func(heading string, items []string) {
		sb.WriteString("\n")
		sb.WriteString(heading)
		sb.WriteString(":\n")
		for _, item := range items {
			sb.WriteString("- ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}
	writeSection("Pros", r.Pros)
	writeSection("Cons", r.Cons)
	writeSection("Important Points", r.ImportantPoints)
	return sb.String()
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}
