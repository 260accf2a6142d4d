package pdfoutline

import (
	"math"
	"sort"
	"strings"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// enrichedChar is a single extracted character with its typography metadata.
type enrichedChar struct {
	Text       rune
	Box        Rect
	FontSize   float64
	FontWeight int
}

// textWord is a run of characters with uniform typography, the intermediate
// unit between raw characters and assembled lines.
type textWord struct {
	Text     string
	Box      Rect
	FontSize float64
	Bold     bool
	Baseline float64
	XHeight  float64
}

// ExtractPageLines extracts the text of a PDF page as a stream of lines
// annotated with font size, bold flag, and position. Lines are returned in
// reading order (top to bottom).
func ExtractPageLines(instance pdfium.Pdfium, page references.FPDF_PAGE, pageNumber int) ([]TextLine, error) {
	pageHeight, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}

	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	if charCount.Count == 0 {
		return nil, nil
	}

	chars, err := extractEnrichedChars(instance, textPage.TextPage, charCount.Count, float64(pageHeight.PageHeight))
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract characters")
	}

	words := groupCharsIntoWords(chars)
	words = expandLigatures(words)
	words = deduplicateCJKChars(words)

	return assembleLines(words, pageNumber), nil
}

// extractEnrichedChars extracts all characters with their metadata.
func extractEnrichedChars(instance pdfium.Pdfium, textPage references.FPDF_TEXTPAGE, count int, pageHeight float64) ([]enrichedChar, error) {
	chars := make([]enrichedChar, 0, count)

	for i := 0; i < count; i++ {
		unicodeRes, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		// Skip rotated text (watermarks, vertical margin labels)
		angle, err := instance.FPDFText_GetCharAngle(&requests.FPDFText_GetCharAngle{
			TextPage: textPage,
			Index:    i,
		})
		if err == nil && isRotatedChar(float64(angle.CharAngle)) {
			continue
		}

		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		// Convert PDF coordinates (origin bottom-left) to standard (origin top-left)
		box := Rect{
			X0: charBox.Left,
			Y0: pageHeight - charBox.Top,
			X1: charBox.Right,
			Y1: pageHeight - charBox.Bottom,
		}

		fontSize, err := instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage,
			Index:    i,
		})
		fontSizeVal := 12.0 // Default
		if err == nil {
			fontSizeVal = fontSize.FontSize
		}

		fontWeight, err := instance.FPDFText_GetFontWeight(&requests.FPDFText_GetFontWeight{
			TextPage: textPage,
			Index:    i,
		})
		fontWeightVal := 400 // Default normal weight
		if err == nil {
			fontWeightVal = fontWeight.FontWeight
		}

		chars = append(chars, enrichedChar{
			Text:       rune(unicodeRes.Unicode),
			Box:        box,
			FontSize:   fontSizeVal,
			FontWeight: fontWeightVal,
		})
	}

	return chars, nil
}

// isWhitespaceChar returns true for the whitespace code points pdfium emits
// between words.
func isWhitespaceChar(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == 0x00A0
}

// isRotatedChar checks if a character is rotated (not horizontal).
// angle is in radians (0 = horizontal, π/2 ≈ 1.57 = 90°, π ≈ 3.14 = 180°)
func isRotatedChar(angle float64) bool {
	degrees := angle * 180.0 / math.Pi

	// Normalize to 0-360 range
	for degrees < 0 {
		degrees += 360
	}
	for degrees >= 360 {
		degrees -= 360
	}

	// Horizontal means within 10 degrees of 0 or 180
	const tolerance = 10.0
	return !(degrees < tolerance || degrees > 360-tolerance ||
		(degrees > 180-tolerance && degrees < 180+tolerance))
}

// wordBoundaryGap detects a word break from horizontal spacing alone, for
// documents whose text streams carry no explicit space characters. A large
// forward gap separates words; a large backward jump is a wrapped line.
func wordBoundaryGap(prev, curr enrichedChar) bool {
	size := math.Max(prev.FontSize, curr.FontSize)
	if size <= 0 {
		return false
	}
	gap := curr.Box.X0 - prev.Box.X1
	return gap > 0.3*size || gap < -size
}

// groupCharsIntoWords groups characters into words on whitespace and
// horizontal gaps.
func groupCharsIntoWords(chars []enrichedChar) []textWord {
	if len(chars) == 0 {
		return nil
	}

	var words []textWord
	var currentWord []enrichedChar
	var wordBox Rect

	flush := func() {
		if len(currentWord) > 0 {
			words = append(words, aggregateWord(currentWord, wordBox))
			currentWord = nil
		}
	}

	for i, char := range chars {
		if isWhitespaceChar(char.Text) {
			flush()
			continue
		}

		if len(currentWord) > 0 && wordBoundaryGap(chars[i-1], char) {
			flush()
		}

		if len(currentWord) == 0 {
			wordBox = char.Box
		} else {
			wordBox = mergeRects(wordBox, char.Box)
		}
		currentWord = append(currentWord, char)
	}
	flush()

	return words
}

// aggregateWord creates a textWord from a slice of characters.
func aggregateWord(chars []enrichedChar, box Rect) textWord {
	if len(chars) == 0 {
		return textWord{}
	}

	var text strings.Builder
	var totalFontSize float64
	weightCounts := make(map[int]int)
	for _, char := range chars {
		text.WriteRune(char.Text)
		totalFontSize += char.FontSize
		weightCounts[char.FontWeight]++
	}

	// Dominant font weight (most common) decides the bold flag
	var dominantWeight, maxCount int
	for weight, count := range weightCounts {
		if count > maxCount {
			dominantWeight = weight
			maxCount = count
		}
	}

	word := textWord{
		Text:     text.String(),
		Box:      box,
		FontSize: totalFontSize / float64(len(chars)),
		Bold:     dominantWeight >= 700,
	}
	word.Baseline = calculateBaseline(word)
	word.XHeight = calculateXHeight(word)

	return word
}

// ligatureMap maps ligature unicode codepoints to their expanded forms
var ligatureMap = map[rune]string{
	0xFB00: "ff",
	0xFB01: "fi",
	0xFB02: "fl",
	0xFB03: "ffi",
	0xFB04: "ffl",
	0xFB05: "ft",
	0xFB06: "st",
}

// expandLigatures expands ligature characters into their component letters
func expandLigatures(words []textWord) []textWord {
	for i := range words {
		word := &words[i]
		runes := []rune(word.Text)
		hasLigature := false

		for _, r := range runes {
			if _, isLigature := ligatureMap[r]; isLigature {
				hasLigature = true
				break
			}
		}

		if !hasLigature {
			continue
		}

		var expanded []rune
		for _, r := range runes {
			if expansion, isLigature := ligatureMap[r]; isLigature {
				expanded = append(expanded, []rune(expansion)...)
			} else {
				expanded = append(expanded, r)
			}
		}

		word.Text = string(expanded)
	}
	return words
}

// isCJK checks if a rune is in a CJK unicode block
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Unified Ideographs Extension A
		(r >= 0x20000 && r <= 0x2A6DF) || // CJK Unified Ideographs Extension B
		(r >= 0xF900 && r <= 0xFAFF) // CJK Compatibility Ideographs
}

// containsCJK checks if a slice of runes contains any CJK characters
func containsCJK(runes []rune) bool {
	for _, r := range runes {
		if isCJK(r) {
			return true
		}
	}
	return false
}

// deduplicateCJKChars removes duplicate consecutive CJK characters that appear
// at nearly identical positions (common rendering artifact in some PDFs)
func deduplicateCJKChars(words []textWord) []textWord {
	for i := range words {
		word := &words[i]
		runes := []rune(word.Text)

		if len(runes) <= 1 || !containsCJK(runes) {
			continue
		}

		deduplicated := []rune{runes[0]}
		for j := 1; j < len(runes); j++ {
			if runes[j] == runes[j-1] && isCJK(runes[j]) {
				// Width per character well below the font size suggests the
				// duplicate pair occupies one glyph cell
				avgCharWidth := word.Box.Width() / float64(len(runes))
				if avgCharWidth < word.FontSize*0.7 {
					continue
				}
			}
			deduplicated = append(deduplicated, runes[j])
		}

		word.Text = string(deduplicated)
	}
	return words
}

// assembleLines sorts words into reading order, groups them into lines by
// baseline proximity, and folds each group into a single TextLine. The line
// font size is the largest word size, and the line is bold when bold words
// make up at least half of its characters.
func assembleLines(words []textWord, pageNumber int) []TextLine {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]textWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		baselineDiff := math.Abs(sorted[i].Baseline - sorted[j].Baseline)
		if baselineDiff < 3 { // Same line threshold
			return sorted[i].Box.X0 < sorted[j].Box.X0
		}
		return sorted[i].Baseline < sorted[j].Baseline
	})

	var lines []TextLine
	var group []textWord
	var baseline, xHeight float64

	flush := func() {
		if len(group) > 0 {
			lines = append(lines, foldLine(group, pageNumber))
			group = nil
		}
	}

	for _, word := range sorted {
		if len(group) == 0 {
			group = append(group, word)
			baseline = word.Baseline
			xHeight = word.XHeight
			continue
		}

		// Adaptive threshold based on x-height
		threshold := 0.4 * xHeight
		if threshold == 0 {
			threshold = 3.0 // Fallback to fixed threshold
		}

		if math.Abs(word.Baseline-baseline) < threshold {
			group = append(group, word)
			// Update baseline to weighted average
			baseline = (baseline*float64(len(group)-1) + word.Baseline) / float64(len(group))
		} else {
			flush()
			group = append(group, word)
			baseline = word.Baseline
			xHeight = word.XHeight
		}
	}
	flush()

	return lines
}

// foldLine merges a group of words into one TextLine.
func foldLine(words []textWord, pageNumber int) TextLine {
	var text strings.Builder
	var boldRunes, totalRunes int
	box := words[0].Box
	fontSize := words[0].FontSize

	for i, word := range words {
		if i > 0 {
			text.WriteByte(' ')
			box = mergeRects(box, word.Box)
		}
		text.WriteString(word.Text)

		runes := len([]rune(word.Text))
		totalRunes += runes
		if word.Bold {
			boldRunes += runes
		}
		if word.FontSize > fontSize {
			fontSize = word.FontSize
		}
	}

	return TextLine{
		Text:     text.String(),
		Page:     pageNumber,
		FontSize: fontSize,
		Bold:     totalRunes > 0 && boldRunes*2 >= totalRunes,
		Position: box,
	}
}
