package pdfoutline

// Rect represents a bounding box in page coordinates.
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top (after conversion from PDF coordinates)
	X1 float64 // Right
	Y1 float64 // Bottom (after conversion from PDF coordinates)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// TextLine is one visual line of text with its typography, as produced by
// the extraction layer. Page indexes are 0-based. Values are never mutated
// after extraction; pipeline stages that combine lines build new values.
type TextLine struct {
	Text     string
	Page     int
	FontSize float64
	Bold     bool
	Position Rect
}

// TypographyProfile holds document-wide font statistics, computed once per
// document and passed read-only into every scorer.
type TypographyProfile struct {
	AvgFontSize float64
	MaxFontSize float64
	MinFontSize float64
	BoldRatio   float64
	LineCount   int
}

// Confidence is the coarse reliability tier of a detection method. It is a
// tie-break between methods, not the acceptance criterion.
type Confidence float64

const (
	ConfidenceHigh    Confidence = 3.0
	ConfidenceMedium  Confidence = 2.0
	ConfidenceLow     Confidence = 1.0
	ConfidenceMinimal Confidence = 0.5
)

// String returns the tier name for logging.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	case ConfidenceMinimal:
		return "minimal"
	}
	return "none"
}

// Method identifies which detection strategy proposed a candidate.
type Method int

const (
	MethodPattern Method = iota
	MethodContent
	MethodTypography
	MethodPosition
)

// String returns the method name for logging.
func (m Method) String() string {
	switch m {
	case MethodPattern:
		return "pattern"
	case MethodContent:
		return "content"
	case MethodTypography:
		return "typography"
	case MethodPosition:
		return "position"
	}
	return "unknown"
}

// HeadingLevel is the outline depth of a heading. The zero value means the
// level has not been determined yet.
type HeadingLevel int

const (
	LevelUnknown HeadingLevel = iota
	LevelH1
	LevelH2
	LevelH3
)

// String returns the serialized level name ("H1", "H2", "H3").
func (l HeadingLevel) String() string {
	switch l {
	case LevelH1:
		return "H1"
	case LevelH2:
		return "H2"
	case LevelH3:
		return "H3"
	}
	return ""
}

// MarshalJSON serializes the level as its name string.
func (l HeadingLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// Candidate is a line provisionally identified as a heading. Index is the
// position of the originating line in the document stream and Span the
// number of consecutive lines merged into it (1 before merging); Line holds
// the resulting logical line. Level stays LevelUnknown until either the
// pattern scorer assigns a provisional level or the hierarchy classifier
// decides one.
type Candidate struct {
	Index      int
	Span       int
	Line       TextLine
	Score      float64
	Confidence Confidence
	Method     Method
	Level      HeadingLevel
}

// OutlineEntry is one final, ordered heading in the document outline.
type OutlineEntry struct {
	Level HeadingLevel
	Text  string
	Page  int
}

// Outline is the inferred document structure: a title plus ordered heading
// entries (page ascending, then vertical position).
type Outline struct {
	Title   string
	Entries []OutlineEntry
}

// BookmarkEntry is one node of the document's embedded bookmark tree,
// flattened with its nesting depth (1 = top level).
type BookmarkEntry struct {
	Title string
	Page  int
	Depth int
}

// DocumentText is the extraction layer's complete product for one document:
// the annotated line stream plus whatever document-level structure the file
// itself supplies.
type DocumentText struct {
	Lines     []TextLine
	MetaTitle string
	PageCount int
	Bookmarks []BookmarkEntry
}
