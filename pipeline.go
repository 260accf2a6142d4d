package pdfoutline

import "strings"

// BuildOutline runs the full inference pipeline over an extracted document:
// profile, per-line scoring, aggregation, merge, validation, hierarchy
// classification, deduplication, and assembly. Every stage is a pure
// transformation over the immutable line stream and read-only profile; the
// data flows strictly forward.
//
// When inference finds fewer headings than the configured minimum and the
// document carries embedded bookmarks, the bookmark tree is used instead.
func BuildOutline(doc DocumentText, config Config) *Outline {
	if len(doc.Lines) == 0 {
		return &Outline{Entries: []OutlineEntry{}}
	}

	profile := BuildProfile(doc.Lines)

	language := config.Language
	if language == "" {
		language = DetectLanguage(doc.Lines)
	}

	typography := NewTypographyScorer(config)
	scorers := []Scorer{
		NewPatternScorer(language),
		NewContentScorer(language, config),
		typography,
		NewPositionScorer(doc.Lines, config),
	}

	aggregator := NewCandidateAggregator(scorers, typography, config)
	candidates := aggregator.Aggregate(doc.Lines, profile)

	validator := NewHeadingValidator(config)
	candidates = NewLineMerger(config, validator).Merge(candidates, doc.Lines)
	candidates = validator.Filter(candidates, doc.Lines)
	candidates = NewHierarchyClassifier(config).Classify(candidates, profile)
	candidates = NewDeduplicator(config).Deduplicate(candidates, doc.PageCount)

	outline := NewOutlineAssembler(config).Assemble(candidates, doc)

	if len(outline.Entries) < config.MinInferredHeadings && len(doc.Bookmarks) > 0 {
		return outlineFromBookmarks(doc, outline.Title, config)
	}

	return outline
}

// outlineFromBookmarks converts the document's embedded bookmark tree into
// an outline, mapping nesting depth to heading level (deeper than three
// clamps to H3). The inferred or metadata title is preserved.
func outlineFromBookmarks(doc DocumentText, title string, config Config) *Outline {
	outline := &Outline{Title: title, Entries: []OutlineEntry{}}
	if outline.Title == "" {
		outline.Title = strings.TrimSpace(doc.MetaTitle)
	}

	for _, bookmark := range doc.Bookmarks {
		text := strings.TrimSpace(bookmark.Title)
		if text == "" {
			continue
		}

		level := LevelH3
		switch bookmark.Depth {
		case 1:
			level = LevelH1
		case 2:
			level = LevelH2
		}

		page := bookmark.Page
		if page < 0 {
			page = 0
		}

		outline.Entries = append(outline.Entries, OutlineEntry{
			Level: level,
			Text:  text,
			Page:  page,
		})
		if len(outline.Entries) == config.MaxOutlineEntries {
			break
		}
	}

	return outline
}
