package pdfoutline

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Scorer is one heading detection strategy. Score evaluates a single line
// against the document profile and returns a candidate, or nil when the
// strategy does not fire. index is the line's position in the document
// stream; only strategies that need neighborhood context use it.
type Scorer interface {
	Score(index int, line TextLine, profile TypographyProfile) *Candidate
}

// patternSpec is the source form of a structural pattern: a regular
// expression anchored at the start of the line plus the nominal level a
// match implies.
type patternSpec struct {
	expr  string
	level HeadingLevel
}

type headingPattern struct {
	re    *regexp.Regexp
	level HeadingLevel
}

func compilePatterns(specs []patternSpec) []headingPattern {
	patterns := make([]headingPattern, 0, len(specs))
	for _, spec := range specs {
		patterns = append(patterns, headingPattern{
			re:    regexp.MustCompile(spec.expr),
			level: spec.level,
		})
	}
	return patterns
}

// defaultPatterns are evaluated in order; the first match wins, so more
// specific numbering forms precede their prefixes (1.2.3 before 1.2
// before 1.) and roman numerals precede single letters.
var defaultPatterns = compilePatterns([]patternSpec{
	{`(?i)^chapter\s+\d+`, LevelH1},
	{`^\d+\.\d+\.\d+`, LevelH3},
	{`^\d+\.\d+`, LevelH2},
	{`^\d+\.(\s|$)`, LevelH1},
	{`^[IVXLCDM]+\.(\s|$)`, LevelH1},
	{`^[A-Z]\.(\s|$)`, LevelH2},
	{`^[A-Z][A-Z0-9\s\-&:.,']{2,29}$`, LevelH2},
})

// PatternScorer matches lines against structural heading patterns: chapter
// markers, numbered sections, roman numerals, lettered sections, and short
// all-caps spans. Matches carry confidence HIGH and a provisional level.
type PatternScorer struct {
	patterns []headingPattern
}

// NewPatternScorer builds a pattern scorer for the given language code.
// Language-specific patterns extend the default set.
func NewPatternScorer(language string) *PatternScorer {
	patterns := defaultPatterns
	if pack := packForLanguage(language); len(pack.patterns) > 0 {
		patterns = make([]headingPattern, 0, len(defaultPatterns)+len(pack.patterns))
		patterns = append(patterns, defaultPatterns...)
		patterns = append(patterns, pack.patterns...)
	}
	return &PatternScorer{patterns: patterns}
}

// Score returns a HIGH-confidence candidate when the line matches a
// structural pattern.
func (s *PatternScorer) Score(index int, line TextLine, profile TypographyProfile) *Candidate {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		return nil
	}

	for _, pattern := range s.patterns {
		if pattern.re.MatchString(text) {
			return &Candidate{
				Index:      index,
				Line:       line,
				Score:      float64(ConfidenceHigh),
				Confidence: ConfidenceHigh,
				Method:     MethodPattern,
				Level:      pattern.level,
			}
		}
	}

	return nil
}

// defaultKeywords are heading indicator words; the default English set is
// always active and language packs extend it.
var defaultKeywords = []string{
	"introduction", "overview", "background", "methodology", "methods",
	"results", "discussion", "conclusion", "conclusions", "summary",
	"abstract", "references", "bibliography", "appendix", "acknowledgments",
	"objectives", "goals", "purpose", "scope", "limitations", "analysis",
	"evaluation", "assessment", "review", "survey",
}

// ContentScorer matches lines that start with a heading indicator word and
// are short enough to be a heading rather than a sentence containing the
// word. Matches carry confidence MEDIUM and no provisional level; the
// hierarchy classifier decides the level later from typography.
type ContentScorer struct {
	keywords  []string
	maxLength int
	fold      cases.Caser
}

// NewContentScorer builds a content scorer for the given language code.
func NewContentScorer(language string, config Config) *ContentScorer {
	keywords := defaultKeywords
	if pack := packForLanguage(language); len(pack.keywords) > 0 {
		keywords = make([]string, 0, len(defaultKeywords)+len(pack.keywords))
		keywords = append(keywords, defaultKeywords...)
		keywords = append(keywords, pack.keywords...)
	}
	return &ContentScorer{
		keywords:  keywords,
		maxLength: config.MaxContentLength,
		fold:      cases.Fold(),
	}
}

// Score returns a MEDIUM-confidence candidate when the line equals or is
// prefixed by an indicator word.
func (s *ContentScorer) Score(index int, line TextLine, profile TypographyProfile) *Candidate {
	text := strings.TrimSpace(line.Text)
	if text == "" || len(text) > s.maxLength {
		return nil
	}

	normalized := s.fold.String(text)
	for _, keyword := range s.keywords {
		rest, found := strings.CutPrefix(normalized, keyword)
		if !found {
			continue
		}
		// Word boundary: exact match, a following separator, or a
		// non-Latin keyword (CJK headings carry no spaces).
		if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, ":") && keyword[0] < 0x80 {
			continue
		}

		return &Candidate{
			Index:      index,
			Line:       line,
			Score:      float64(ConfidenceMedium),
			Confidence: ConfidenceMedium,
			Method:     MethodContent,
		}
	}

	return nil
}

// TypographyScorer supplies the font-size contribution to the aggregate
// score. It is a supporting signal: it creates a candidate on its own only
// in the rescue case, a bold line at or above the H1 font tier that no
// other strategy proposed.
type TypographyScorer struct {
	config Config
}

// NewTypographyScorer builds a typography scorer.
func NewTypographyScorer(config Config) *TypographyScorer {
	return &TypographyScorer{config: config}
}

// Tier returns the font-size contribution for a line: 6 at or above the H1
// ratio of the maximum size, 5 at the H2 ratio, 4 at the H3 multiple of the
// average, 0 otherwise.
func (s *TypographyScorer) Tier(line TextLine, profile TypographyProfile) float64 {
	if profile.MaxFontSize <= 0 {
		return 0
	}
	switch {
	case line.FontSize >= s.config.H1FontRatio*profile.MaxFontSize:
		return 6
	case line.FontSize >= s.config.H2FontRatio*profile.MaxFontSize:
		return 5
	case profile.AvgFontSize > 0 && line.FontSize >= s.config.H3FontRatio*profile.AvgFontSize:
		return 4
	}
	return 0
}

// Score returns a LOW-confidence rescue candidate for bold lines at the H1
// font tier. All other typographic influence flows through Tier via the
// aggregator.
func (s *TypographyScorer) Score(index int, line TextLine, profile TypographyProfile) *Candidate {
	if !line.Bold || profile.MaxFontSize <= 0 {
		return nil
	}
	if line.FontSize < s.config.H1FontRatio*profile.MaxFontSize {
		return nil
	}
	if strings.TrimSpace(line.Text) == "" {
		return nil
	}

	return &Candidate{
		Index:      index,
		Line:       line,
		Score:      float64(ConfidenceLow),
		Confidence: ConfidenceLow,
		Method:     MethodTypography,
	}
}

// PositionScorer flags vertically isolated lines: a blank gap above and
// below exceeding a multiple of the median line spacing, and a width short
// relative to the page's text extent. It is a rescue signal of last resort
// (confidence MINIMAL) and never displaces another strategy's candidate.
type PositionScorer struct {
	isolated map[int]bool
}

// NewPositionScorer precomputes isolation for every line in the stream.
func NewPositionScorer(lines []TextLine, config Config) *PositionScorer {
	scorer := &PositionScorer{isolated: make(map[int]bool)}

	// Indices grouped by page, preserving stream order.
	pages := make(map[int][]int)
	var pageOrder []int
	for i, line := range lines {
		if _, seen := pages[line.Page]; !seen {
			pageOrder = append(pageOrder, line.Page)
		}
		pages[line.Page] = append(pages[line.Page], i)
	}

	// Median spacing over consecutive same-page gaps, document-wide.
	var gaps []float64
	for _, page := range pageOrder {
		indices := pages[page]
		for j := 1; j < len(indices); j++ {
			gap := lines[indices[j]].Position.Y0 - lines[indices[j-1]].Position.Y1
			if gap > 0 {
				gaps = append(gaps, gap)
			}
		}
	}
	medianGap := calculateMedian(gaps)

	for _, page := range pageOrder {
		indices := pages[page]

		// Text extent of the page, as a stand-in for the page width.
		extentX0 := lines[indices[0]].Position.X0
		extentX1 := lines[indices[0]].Position.X1
		for _, i := range indices {
			if lines[i].Position.X0 < extentX0 {
				extentX0 = lines[i].Position.X0
			}
			if lines[i].Position.X1 > extentX1 {
				extentX1 = lines[i].Position.X1
			}
		}
		extent := extentX1 - extentX0

		for j, i := range indices {
			line := lines[i]

			threshold := config.IsolationGapRatio * medianGap
			if medianGap <= 0 {
				// No measurable spacing in this document; require a gap
				// beyond the line's own height instead.
				threshold = config.IsolationGapRatio * line.Position.Height()
			}

			// Lines at page edges count as isolated on that side.
			isolatedAbove := true
			if j > 0 {
				isolatedAbove = line.Position.Y0-lines[indices[j-1]].Position.Y1 > threshold
			}
			isolatedBelow := true
			if j < len(indices)-1 {
				isolatedBelow = lines[indices[j+1]].Position.Y0-line.Position.Y1 > threshold
			}

			short := extent <= 0 || line.Position.Width() < config.IsolationMaxWidthRatio*extent

			if isolatedAbove && isolatedBelow && short {
				scorer.isolated[i] = true
			}
		}
	}

	return scorer
}

// Score returns a MINIMAL-confidence candidate for isolated lines.
func (s *PositionScorer) Score(index int, line TextLine, profile TypographyProfile) *Candidate {
	if !s.isolated[index] || strings.TrimSpace(line.Text) == "" {
		return nil
	}

	return &Candidate{
		Index:      index,
		Line:       line,
		Score:      float64(ConfidenceMinimal),
		Confidence: ConfidenceMinimal,
		Method:     MethodPosition,
	}
}
