package pdfoutline

import (
	"math"
	"sort"
)

// calculateMedian calculates the median value of a float64 slice
func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// average calculates the arithmetic mean of a float64 slice
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateBaseline estimates the baseline Y-coordinate for a word
// The baseline is typically at the bottom of non-descender characters
func calculateBaseline(word textWord) float64 {
	// For most fonts, baseline is approximately at Y1 (bottom of bounding box)
	// Adjust by a small factor for descenders
	return word.Box.Y1 - (word.FontSize * 0.15)
}

// calculateXHeight estimates the x-height (height of lowercase letters) for a word
// X-height is typically about 0.5-0.7 times the font size
func calculateXHeight(word textWord) float64 {
	// Check if word contains lowercase letters
	hasLowercase := false
	for _, r := range word.Text {
		if r >= 'a' && r <= 'z' {
			hasLowercase = true
			break
		}
	}

	if hasLowercase {
		// Use actual height for words with lowercase
		return word.Box.Height() * 0.7
	}

	// Estimate based on font size
	return word.FontSize * 0.5
}

// mergeRects merges two rectangles into their bounding box
func mergeRects(r1, r2 Rect) Rect {
	return Rect{
		X0: math.Min(r1.X0, r2.X0),
		Y0: math.Min(r1.Y0, r2.Y0),
		X1: math.Max(r1.X1, r2.X1),
		Y1: math.Max(r1.Y1, r2.Y1),
	}
}
