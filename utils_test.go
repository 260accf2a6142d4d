package pdfoutline

import (
	"testing"
)

// TestCalculateMedian tests odd, even, and empty inputs
func TestCalculateMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count", []float64{4, 1, 3, 2}, 2.5},
		{"single value", []float64{7}, 7},
		{"empty", nil, 0},
		{"repeated values", []float64{3, 10, 10, 3, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calculateMedian(tt.values); got != tt.expected {
				t.Errorf("calculateMedian(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

// TestCalculateMedian_DoesNotMutate tests that the input slice keeps its
// order
func TestCalculateMedian_DoesNotMutate(t *testing.T) {
	values := []float64{3, 1, 2}
	calculateMedian(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

// TestAverage tests the mean helper
func TestAverage(t *testing.T) {
	if got := average([]float64{2, 4, 6}); got != 4 {
		t.Errorf("average() = %v, want 4", got)
	}
	if got := average(nil); got != 0 {
		t.Errorf("average(nil) = %v, want 0", got)
	}
}

// TestMergeRects tests bounding box union
func TestMergeRects(t *testing.T) {
	r1 := Rect{X0: 10, Y0: 20, X1: 50, Y1: 60}
	r2 := Rect{X0: 5, Y0: 30, X1: 70, Y1: 55}

	merged := mergeRects(r1, r2)
	expected := Rect{X0: 5, Y0: 20, X1: 70, Y1: 60}
	if merged != expected {
		t.Errorf("mergeRects() = %+v, want %+v", merged, expected)
	}
}

// TestCalculateXHeight tests the lowercase and caps-only estimates
func TestCalculateXHeight(t *testing.T) {
	lower := textWord{Text: "hello", Box: Rect{Y0: 100, Y1: 110}, FontSize: 12}
	if got := calculateXHeight(lower); got != 7 {
		t.Errorf("calculateXHeight(lowercase) = %v, want 7", got)
	}

	caps := textWord{Text: "HELLO", Box: Rect{Y0: 100, Y1: 112}, FontSize: 12}
	if got := calculateXHeight(caps); got != 6 {
		t.Errorf("calculateXHeight(caps) = %v, want 6", got)
	}
}

// TestCalculateBaseline tests the descender adjustment
func TestCalculateBaseline(t *testing.T) {
	word := textWord{Box: Rect{Y0: 100, Y1: 112}, FontSize: 10}
	if got := calculateBaseline(word); got != 110.5 {
		t.Errorf("calculateBaseline() = %v, want 110.5", got)
	}
}
