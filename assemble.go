package pdfoutline

import (
	"sort"
	"strings"
)

// OutlineAssembler orders the surviving headings and produces the final
// outline, including title extraction.
type OutlineAssembler struct {
	config Config
}

// NewOutlineAssembler builds an assembler.
func NewOutlineAssembler(config Config) *OutlineAssembler {
	return &OutlineAssembler{config: config}
}

// Assemble sorts candidates by page then vertical position, picks the
// document title, and emits the outline. The title is the highest-scoring
// H1 on the first page, falling back to the document's metadata title; a
// page-derived title is excluded from the entries. An empty line stream
// yields an empty outline, never an error.
func (a *OutlineAssembler) Assemble(candidates []Candidate, doc DocumentText) *Outline {
	outline := &Outline{Entries: []OutlineEntry{}}
	if len(doc.Lines) == 0 {
		return outline
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line.Page != sorted[j].Line.Page {
			return sorted[i].Line.Page < sorted[j].Line.Page
		}
		return sorted[i].Line.Position.Y0 < sorted[j].Line.Position.Y0
	})

	titleIndex := a.pickTitle(sorted)
	if titleIndex >= 0 {
		outline.Title = strings.TrimSpace(sorted[titleIndex].Line.Text)
	} else {
		outline.Title = strings.TrimSpace(doc.MetaTitle)
	}

	for i, c := range sorted {
		if i == titleIndex {
			continue
		}
		outline.Entries = append(outline.Entries, OutlineEntry{
			Level: c.Level,
			Text:  strings.TrimSpace(c.Line.Text),
			Page:  c.Line.Page,
		})
		if len(outline.Entries) == a.config.MaxOutlineEntries {
			break
		}
	}

	return outline
}

// pickTitle returns the index of the title candidate in the sorted slice,
// or -1. Eligible candidates are H1 headings on the first page; the highest
// aggregate score wins, with typographic prominence (font size, bold bonus)
// as the tie-break.
func (a *OutlineAssembler) pickTitle(sorted []Candidate) int {
	best := -1
	for i, c := range sorted {
		if c.Line.Page != 0 || c.Level != LevelH1 {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		if c.Score > sorted[best].Score {
			best = i
		} else if c.Score == sorted[best].Score && prominence(c) > prominence(sorted[best]) {
			best = i
		}
	}
	return best
}

// prominence ranks same-score title contenders the way a reader would: by
// size, with a fixed bonus for bold.
func prominence(c Candidate) float64 {
	p := c.Line.FontSize
	if c.Line.Bold {
		p += 2
	}
	return p
}
