package pdfoutline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdfoutline "github.com/ivanvanderbyl/pdfoutline"
)

func line(text string, page int, size float64, bold bool, x0, y0, x1, y1 float64) pdfoutline.TextLine {
	return pdfoutline.TextLine{
		Text:     text,
		Page:     page,
		FontSize: size,
		Bold:     bold,
		Position: pdfoutline.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
	}
}

// TestBuildOutline_Report runs the full pipeline over a synthetic
// three-page report with a cover title, numbered sections, and an
// isolated closing heading.
func TestBuildOutline_Report(t *testing.T) {
	doc := pdfoutline.DocumentText{
		PageCount: 3,
		Lines: []pdfoutline.TextLine{
			line("ANNUAL TECHNOLOGY REVIEW", 0, 24, true, 72, 72, 400, 96),
			line("State of Engineering Infrastructure", 0, 14, false, 72, 110, 380, 124),
			line("1. Introduction", 0, 18, true, 72, 150, 220, 168),
			line("Modern infrastructure teams face growing operational complexity", 0, 11, false, 72, 172, 540, 183),
			line("Cloud migrations have reshaped how systems are planned and run", 0, 11, false, 72, 186, 540, 197),
			line("1.1 Motivation", 1, 14, true, 72, 72, 200, 86),
			line("Teams report that deployment cadence doubles year over year", 1, 11, false, 72, 90, 540, 101),
			line("Coordination costs rise sharply as platforms multiply", 1, 11, false, 72, 104, 540, 115),
			line("1.2 Prior Work", 1, 14, true, 72, 130, 210, 144),
			line("Earlier studies focused on single-region architectures", 1, 11, false, 72, 148, 540, 159),
			line("Recent work extends those findings to global deployments", 1, 11, false, 72, 162, 540, 173),
			line("2. Current Architectures", 2, 18, true, 72, 72, 310, 90),
			line("Most organizations now blend managed services with owned clusters", 2, 11, false, 72, 94, 540, 105),
			line("2.1 Cloud Native Designs", 2, 14, true, 72, 120, 300, 134),
			line("Container orchestration dominates new platform investments", 2, 11, false, 72, 138, 540, 149),
			line("Conclusion", 2, 14, true, 72, 170, 170, 184),
		},
	}

	outline := pdfoutline.BuildOutline(doc, pdfoutline.DefaultConfig())
	require.NotNil(t, outline)

	assert.Equal(t, "ANNUAL TECHNOLOGY REVIEW", outline.Title)

	expected := []pdfoutline.OutlineEntry{
		{Level: pdfoutline.LevelH1, Text: "1. Introduction", Page: 0},
		{Level: pdfoutline.LevelH2, Text: "1.1 Motivation", Page: 1},
		{Level: pdfoutline.LevelH2, Text: "1.2 Prior Work", Page: 1},
		{Level: pdfoutline.LevelH1, Text: "2. Current Architectures", Page: 2},
		{Level: pdfoutline.LevelH2, Text: "2.1 Cloud Native Designs", Page: 2},
		{Level: pdfoutline.LevelH3, Text: "Conclusion", Page: 2},
	}
	assert.Equal(t, expected, outline.Entries)
}

// TestBuildOutline_BookmarkFallback verifies that a document whose text
// yields too few headings falls back to its embedded bookmark tree.
func TestBuildOutline_BookmarkFallback(t *testing.T) {
	doc := pdfoutline.DocumentText{
		PageCount: 3,
		MetaTitle: "My Book",
		Lines: []pdfoutline.TextLine{
			line("Rain fell steadily through the early hours", 0, 11, false, 72, 100, 540, 111),
			line("Trains ran late across the northern corridor", 0, 11, false, 72, 114, 540, 125),
			line("Crews cleared the tracks before dawn", 0, 11, false, 72, 128, 540, 139),
			line("Service resumed by the middle of the morning", 0, 11, false, 72, 142, 540, 153),
			line("Delays carried into the afternoon schedule", 0, 11, false, 72, 156, 540, 167),
		},
		Bookmarks: []pdfoutline.BookmarkEntry{
			{Title: "Overview", Page: 0, Depth: 1},
			{Title: "Details", Page: 1, Depth: 2},
			{Title: "Appendix", Page: 2, Depth: 1},
			{Title: "Colophon", Page: -1, Depth: 4},
		},
	}

	outline := pdfoutline.BuildOutline(doc, pdfoutline.DefaultConfig())
	require.NotNil(t, outline)

	assert.Equal(t, "My Book", outline.Title)

	expected := []pdfoutline.OutlineEntry{
		{Level: pdfoutline.LevelH1, Text: "Overview", Page: 0},
		{Level: pdfoutline.LevelH2, Text: "Details", Page: 1},
		{Level: pdfoutline.LevelH1, Text: "Appendix", Page: 2},
		{Level: pdfoutline.LevelH3, Text: "Colophon", Page: 0},
	}
	assert.Equal(t, expected, outline.Entries)
}

// TestBuildOutline_UniformTypography verifies that a single-font document
// still yields an outline from structural patterns alone.
func TestBuildOutline_UniformTypography(t *testing.T) {
	doc := pdfoutline.DocumentText{
		PageCount: 3,
		Lines: []pdfoutline.TextLine{
			line("Quiet mornings suit the harbor town", 0, 12, false, 72, 100, 540, 112),
			line("Boats leave before the fog lifts", 0, 12, false, 72, 115, 540, 127),
			line("1. Alpha Section", 1, 12, false, 72, 72, 250, 84),
			line("Catch totals held steady through spring", 1, 12, false, 72, 93, 540, 105),
			line("2. Beta Section", 2, 12, false, 72, 72, 250, 84),
			line("Prices at the market moved with the weather", 2, 12, false, 72, 93, 540, 105),
			line("2.1 Gamma Detail", 2, 12, false, 72, 110, 250, 122),
			line("Cold snaps pushed demand toward preserved stock", 2, 12, false, 72, 131, 540, 143),
		},
	}

	outline := pdfoutline.BuildOutline(doc, pdfoutline.DefaultConfig())
	require.NotNil(t, outline)

	assert.Empty(t, outline.Title)

	expected := []pdfoutline.OutlineEntry{
		{Level: pdfoutline.LevelH1, Text: "1. Alpha Section", Page: 1},
		{Level: pdfoutline.LevelH1, Text: "2. Beta Section", Page: 2},
		{Level: pdfoutline.LevelH2, Text: "2.1 Gamma Detail", Page: 2},
	}
	assert.Equal(t, expected, outline.Entries)
}

// TestBuildOutline_EmptyDocument verifies the empty-stream contract: a
// valid empty outline, never nil.
func TestBuildOutline_EmptyDocument(t *testing.T) {
	outline := pdfoutline.BuildOutline(pdfoutline.DocumentText{}, pdfoutline.DefaultConfig())
	require.NotNil(t, outline)
	assert.Empty(t, outline.Title)
	assert.NotNil(t, outline.Entries)
	assert.Empty(t, outline.Entries)
}

// TestBuildOutline_NoBookmarkFallbackWhenEnough verifies that bookmarks
// are ignored once inference finds enough headings.
func TestBuildOutline_NoBookmarkFallbackWhenEnough(t *testing.T) {
	doc := pdfoutline.DocumentText{
		PageCount: 3,
		Lines: []pdfoutline.TextLine{
			line("Sound carries far over open water", 0, 12, false, 72, 100, 540, 112),
			line("Gulls follow the ferries into port", 0, 12, false, 72, 115, 540, 127),
			line("1. Alpha", 1, 12, false, 72, 72, 200, 84),
			line("Nets dry on the seawall racks", 1, 12, false, 72, 93, 540, 105),
			line("2. Beta", 2, 12, false, 72, 72, 200, 84),
			line("Ferries idle at the outer berth", 2, 12, false, 72, 93, 540, 105),
			line("3. Gamma", 2, 12, false, 72, 110, 200, 122),
			line("Crates stack high along the quay", 2, 12, false, 72, 131, 540, 143),
		},
		Bookmarks: []pdfoutline.BookmarkEntry{
			{Title: "Should Not Appear", Page: 0, Depth: 1},
		},
	}

	outline := pdfoutline.BuildOutline(doc, pdfoutline.DefaultConfig())
	require.NotNil(t, outline)
	require.Len(t, outline.Entries, 3)
	for _, entry := range outline.Entries {
		assert.NotEqual(t, "Should Not Appear", entry.Text)
	}
}
