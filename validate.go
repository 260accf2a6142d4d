package pdfoutline

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bulletRunes are list markers that disqualify a line as a heading.
var bulletRunes = []rune{'•', '◦', '▪', '▫', '–', '-', '*', '→'}

var numberedListRe = regexp.MustCompile(`^\d+\)`)

// stopWords dominate generic non-heading fragments.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "of": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "with": true, "by": true, "from": true,
	"as": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "this": true, "that": true, "it": true,
}

// connectiveEndings are words a heading never ends on; a line ending with
// one was cut mid-sentence.
var connectiveEndings = map[string]bool{
	"and": true, "or": true, "but": true, "of": true, "to": true,
	"with": true, "the": true, "a": true, "an": true, "in": true,
	"on": true, "at": true, "for": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true,
}

// blockedPhrases are exact generic fragments that look like headings to the
// scorers but never are.
var blockedPhrases = map[string]bool{
	"page": true, "continued": true, "cont": true, "see": true,
	"note": true, "draft": true, "n/a": true, "tbd": true,
	"all rights reserved": true,
}

// HeadingValidator is a pure boolean gate rejecting merged candidates that
// are fragments, list or table artifacts, or prose.
type HeadingValidator struct {
	config Config
}

// NewHeadingValidator builds a validator.
func NewHeadingValidator(config Config) *HeadingValidator {
	return &HeadingValidator{config: config}
}

// Filter drops invalid candidates. lines supplies the following content
// line for the mid-sentence heuristic.
func (v *HeadingValidator) Filter(candidates []Candidate, lines []TextLine) []Candidate {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		var next *TextLine
		if after := c.Index + c.Span; after < len(lines) && lines[after].Page == c.Line.Page {
			next = &lines[after]
		}
		if v.Valid(c, next) {
			kept = append(kept, c)
		}
	}
	return kept
}

// Valid reports whether a merged candidate survives validation. next is the
// first content line after the candidate on the same page, or nil.
func (v *HeadingValidator) Valid(c Candidate, next *TextLine) bool {
	text := strings.TrimSpace(c.Line.Text)

	length := utf8.RuneCountInString(text)
	if length < 2 || length > v.config.MaxHeadingLength {
		return false
	}
	if !containsLetter(text) {
		return false
	}
	if isListMarker(text) {
		return false
	}
	if isTableRow(text) {
		return false
	}
	if isStopPhrase(text) {
		return false
	}
	if v.endsMidSentence(text, next) {
		return false
	}
	return true
}

// stopsContinuation reports whether a line must not be absorbed into a
// heading: structural artifacts and overlong prose end a merge run.
func (v *HeadingValidator) stopsContinuation(text string) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > v.config.MaxHeadingLength {
		return true
	}
	return isListMarker(text) || isTableRow(text)
}

func containsLetter(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// isListMarker matches bullet prefixes and numbered list items of the
// "1)" form. Numbered section headings ("1.", "1.2") are structural
// patterns, not list markers.
func isListMarker(text string) bool {
	first, _ := utf8.DecodeRuneInString(text)
	if slices.Contains(bulletRunes, first) {
		return true
	}
	return numberedListRe.MatchString(text)
}

// isTableRow matches column-separated rows of short cells, the shape of a
// table header rendered as one line.
func isTableRow(text string) bool {
	var cells []string
	switch {
	case strings.Count(text, "|") >= 2:
		cells = strings.Split(text, "|")
	case strings.Count(text, "\t") >= 2:
		cells = strings.Split(text, "\t")
	default:
		return false
	}

	short := 0
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if len(strings.Fields(cell)) <= 3 {
			short++
		}
	}
	return short >= 3
}

// isStopPhrase matches the blocklist and stop-word-dominated fragments.
func isStopPhrase(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	lowered = strings.TrimRight(lowered, ".:")
	if blockedPhrases[lowered] {
		return true
	}

	words := strings.Fields(lowered)
	if len(words) < 2 {
		return false
	}
	stop := 0
	for _, word := range words {
		if stopWords[word] {
			stop++
		}
	}
	return float64(stop)/float64(len(words)) >= 0.6
}

// endsMidSentence applies the continuation heuristic: trailing separators,
// a connective final word, or a following line that starts lowercase while
// the candidate lacks terminal punctuation.
func (v *HeadingValidator) endsMidSentence(text string, next *TextLine) bool {
	if strings.HasSuffix(text, ",") || strings.HasSuffix(text, ";") {
		return true
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > 0 && connectiveEndings[words[len(words)-1]] {
		return true
	}

	if next != nil && !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, ":") &&
		!strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		first, _ := utf8.DecodeRuneInString(strings.TrimSpace(next.Text))
		if unicode.IsLower(first) {
			return true
		}
	}

	return false
}
