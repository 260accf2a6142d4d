package pdfoutline

import (
	"testing"
)

// TestDeduplicate_RunningHeader tests that text repeating across most pages
// is dropped wholesale
func TestDeduplicate_RunningHeader(t *testing.T) {
	candidates := []Candidate{
		{Line: TextLine{Text: "Annual Report 2024", Page: 0}, Confidence: ConfidenceHigh},
		{Line: TextLine{Text: "Introduction", Page: 0}, Confidence: ConfidenceMedium},
		{Line: TextLine{Text: "Annual Report 2024", Page: 1}, Confidence: ConfidenceHigh},
		{Line: TextLine{Text: "Annual Report 2024", Page: 2}, Confidence: ConfidenceHigh},
	}

	kept := NewDeduplicator(DefaultConfig()).Deduplicate(candidates, 4)
	if len(kept) != 1 {
		t.Fatalf("Deduplicate() kept %d candidates, want 1", len(kept))
	}
	if kept[0].Line.Text != "Introduction" {
		t.Errorf("kept %q, want Introduction", kept[0].Line.Text)
	}
}

// TestDeduplicate_RepeatKeepsBestConfidence tests repeat resolution inside
// the header/footer threshold
func TestDeduplicate_RepeatKeepsBestConfidence(t *testing.T) {
	candidates := []Candidate{
		{Line: TextLine{Text: "Methods", Page: 1}, Confidence: ConfidenceMedium},
		{Line: TextLine{Text: "Methods", Page: 2}, Confidence: ConfidenceHigh},
	}

	kept := NewDeduplicator(DefaultConfig()).Deduplicate(candidates, 10)
	if len(kept) != 1 {
		t.Fatalf("Deduplicate() kept %d candidates, want 1", len(kept))
	}
	if kept[0].Line.Page != 2 {
		t.Errorf("kept page = %d, want 2 (higher confidence)", kept[0].Line.Page)
	}
}

// TestDeduplicate_TieKeepsFirst tests that equal confidence keeps the
// earlier occurrence
func TestDeduplicate_TieKeepsFirst(t *testing.T) {
	candidates := []Candidate{
		{Line: TextLine{Text: "Methods", Page: 3}, Confidence: ConfidenceMedium},
		{Line: TextLine{Text: "Methods", Page: 7}, Confidence: ConfidenceMedium},
	}

	kept := NewDeduplicator(DefaultConfig()).Deduplicate(candidates, 10)
	if len(kept) != 1 {
		t.Fatalf("Deduplicate() kept %d candidates, want 1", len(kept))
	}
	if kept[0].Line.Page != 3 {
		t.Errorf("kept page = %d, want 3 (document order)", kept[0].Line.Page)
	}
}

// TestDeduplicate_Normalization tests that case, whitespace, and
// compatibility forms group together
func TestDeduplicate_Normalization(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"case and whitespace", "INTRODUCTION  ", "introduction"},
		{"ligature", "Oﬃce Hours", "Office Hours"},
		{"internal spacing", "Office  Hours", "Office Hours"},
	}

	dedup := NewDeduplicator(DefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := []Candidate{
				{Line: TextLine{Text: tt.a, Page: 1}, Confidence: ConfidenceMedium},
				{Line: TextLine{Text: tt.b, Page: 4}, Confidence: ConfidenceMedium},
			}
			kept := dedup.Deduplicate(candidates, 20)
			if len(kept) != 1 {
				t.Errorf("Deduplicate() kept %d candidates, want 1 (%q vs %q)", len(kept), tt.a, tt.b)
			}
		})
	}
}

// TestDeduplicate_Idempotent tests that a second pass changes nothing
func TestDeduplicate_Idempotent(t *testing.T) {
	candidates := []Candidate{
		{Line: TextLine{Text: "Introduction", Page: 0}, Confidence: ConfidenceMedium},
		{Line: TextLine{Text: "Methods", Page: 1}, Confidence: ConfidenceHigh},
		{Line: TextLine{Text: "Methods", Page: 2}, Confidence: ConfidenceLow},
		{Line: TextLine{Text: "Results", Page: 3}, Confidence: ConfidenceHigh},
	}

	dedup := NewDeduplicator(DefaultConfig())
	once := dedup.Deduplicate(candidates, 10)
	twice := dedup.Deduplicate(once, 10)

	if len(once) != 3 || len(twice) != len(once) {
		t.Fatalf("pass sizes = %d then %d, want 3 then 3", len(once), len(twice))
	}
	for i := range once {
		if once[i].Line != twice[i].Line {
			t.Errorf("candidate %d changed between passes", i)
		}
	}
}

// TestDeduplicate_SingleCandidate tests the passthrough for trivial input
func TestDeduplicate_SingleCandidate(t *testing.T) {
	candidates := []Candidate{{Line: TextLine{Text: "Overview", Page: 0}}}
	kept := NewDeduplicator(DefaultConfig()).Deduplicate(candidates, 1)
	if len(kept) != 1 {
		t.Errorf("Deduplicate() kept %d candidates, want 1", len(kept))
	}
}
