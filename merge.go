package pdfoutline

import (
	"math"
	"strings"
)

// fontSizeTolerance treats extracted sizes within this delta as identical.
const fontSizeTolerance = 0.01

// LineMerger reconstructs headings that extraction split across lines: a
// candidate absorbs the immediately following line when both share page,
// font size, and bold flag, the vertical gap is small, and the following
// line is neither a stronger candidate in its own right nor a structural
// artifact. Implemented as a fold over the stream, so merging a homogeneous
// run is associative.
type LineMerger struct {
	config    Config
	validator *HeadingValidator
}

// NewLineMerger builds a merger that consults the validator for
// continuation-stopping artifacts.
func NewLineMerger(config Config, validator *HeadingValidator) *LineMerger {
	return &LineMerger{config: config, validator: validator}
}

// Merge walks accepted candidates in stream order and absorbs their
// continuation lines. Candidates consumed by an earlier merge are removed.
func (m *LineMerger) Merge(candidates []Candidate, lines []TextLine) []Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	byLine := make(map[int]int, len(candidates))
	for i, c := range candidates {
		byLine[c.Index] = i
	}

	consumed := make(map[int]bool)
	merged := make([]Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		if consumed[candidate.Index] {
			continue
		}

		current := candidate
		for next := candidate.Index + current.Span; next < len(lines); next++ {
			nextLine := lines[next]
			if !m.mergeable(current.Line, nextLine) {
				break
			}
			if pos, ok := byLine[next]; ok && candidates[pos].Score > current.Score {
				break
			}
			if m.validator.stopsContinuation(nextLine.Text) {
				break
			}

			current.Line = absorbLine(current.Line, nextLine)
			current.Span++
			consumed[next] = true
		}

		merged = append(merged, current)
	}

	return merged
}

// mergeable reports whether next can continue the current logical line:
// same page, same typography, and a vertical gap below the configured
// multiple of the line height.
func (m *LineMerger) mergeable(current, next TextLine) bool {
	if next.Page != current.Page {
		return false
	}
	if math.Abs(next.FontSize-current.FontSize) > fontSizeTolerance {
		return false
	}
	if next.Bold != current.Bold {
		return false
	}
	if strings.TrimSpace(next.Text) == "" {
		return false
	}

	height := next.Position.Height()
	if height <= 0 {
		height = next.FontSize
	}
	gap := next.Position.Y0 - current.Position.Y1
	return gap <= m.config.MergeGapRatio*height
}

// absorbLine concatenates text with a single space and extends the bounding
// region. The inputs are not modified.
func absorbLine(current, next TextLine) TextLine {
	current.Text = strings.TrimSpace(current.Text) + " " + strings.TrimSpace(next.Text)
	current.Position = mergeRects(current.Position, next.Position)
	return current
}
