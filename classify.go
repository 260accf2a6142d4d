package pdfoutline

// HierarchyClassifier assigns heading levels from font size relative to the
// document profile. Pattern-derived levels are kept unless the font tier
// would raise them; font evidence never downgrades a pattern match, so a
// chapter marker rendered in body-sized font still registers as H1.
type HierarchyClassifier struct {
	config Config
}

// NewHierarchyClassifier builds a classifier.
func NewHierarchyClassifier(config Config) *HierarchyClassifier {
	return &HierarchyClassifier{config: config}
}

// Classify resolves a level for every candidate. Candidates are never
// dropped here; a line that passed validation but sits below every font
// tier is demoted to H3.
func (c *HierarchyClassifier) Classify(candidates []Candidate, profile TypographyProfile) []Candidate {
	classified := make([]Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		fontLevel := c.levelForSize(candidate.Line.FontSize, profile)

		switch {
		case candidate.Level == LevelUnknown && fontLevel == LevelUnknown:
			candidate.Level = LevelH3
		case candidate.Level == LevelUnknown:
			candidate.Level = fontLevel
		case fontLevel != LevelUnknown && fontLevel < candidate.Level:
			// Upgrade only.
			candidate.Level = fontLevel
		}

		classified = append(classified, candidate)
	}

	return classified
}

// levelForSize maps a font size to a level through the document-relative
// thresholds. A uniform-typography document collapses all thresholds to the
// single size, in which case font size carries no signal and classification
// falls back to pattern levels alone.
func (c *HierarchyClassifier) levelForSize(fontSize float64, profile TypographyProfile) HeadingLevel {
	if profile.MaxFontSize <= 0 || profile.MaxFontSize-profile.MinFontSize < fontSizeTolerance {
		return LevelUnknown
	}

	switch {
	case fontSize >= c.config.H1FontRatio*profile.MaxFontSize:
		return LevelH1
	case fontSize >= c.config.H2FontRatio*profile.MaxFontSize:
		return LevelH2
	case profile.AvgFontSize > 0 && fontSize >= c.config.H3FontRatio*profile.AvgFontSize:
		return LevelH3
	}
	return LevelUnknown
}
