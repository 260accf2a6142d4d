package pdfoutline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Deduplicator collapses repeated headings. Repeats of the same normalized
// text keep the highest-confidence occurrence (first in document order on a
// tie); groups that span a large fraction of the document's pages are
// running headers or footers and are dropped entirely. Running the
// deduplicator on its own output is a no-op.
type Deduplicator struct {
	config Config
	fold   cases.Caser
}

// NewDeduplicator builds a deduplicator.
func NewDeduplicator(config Config) *Deduplicator {
	return &Deduplicator{config: config, fold: cases.Fold()}
}

// Deduplicate returns the surviving candidates in stream order. pageCount
// is the document's total page count, the base of the header/footer
// fraction rule.
func (d *Deduplicator) Deduplicate(candidates []Candidate, pageCount int) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	groups := make(map[string][]int)
	order := make([]string, 0, len(candidates))
	for i, c := range candidates {
		key := d.normalize(c.Line.Text)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	keep := make(map[int]bool, len(order))
	for _, key := range order {
		indices := groups[key]

		pages := make(map[int]bool)
		for _, i := range indices {
			pages[candidates[i].Line.Page] = true
		}
		if pageCount > 0 && len(pages) >= d.config.HeaderFooterMinPages &&
			float64(len(pages)) > d.config.HeaderFooterPageRatio*float64(pageCount) {
			// Running header/footer: drop the whole group.
			continue
		}

		best := indices[0]
		for _, i := range indices[1:] {
			if candidates[i].Confidence > candidates[best].Confidence {
				best = i
			}
		}
		keep[best] = true
	}

	kept := make([]Candidate, 0, len(keep))
	for i, c := range candidates {
		if keep[i] {
			kept = append(kept, c)
		}
	}
	return kept
}

// normalize folds case, collapses whitespace, and applies NFKC so that
// visually identical repeats (ligatures, fullwidth forms) group together.
func (d *Deduplicator) normalize(text string) string {
	text = norm.NFKC.String(text)
	text = d.fold.String(text)
	return strings.Join(strings.Fields(text), " ")
}
