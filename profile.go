package pdfoutline

import "strings"

// BuildProfile computes document-wide font statistics in a single pass over
// the line stream. Empty lines are excluded. The result is valid even for
// degenerate inputs: an empty document yields a zero profile, and a uniform
// single font size collapses all thresholds to that size, in which case
// classification falls back to textual and pattern signals.
func BuildProfile(lines []TextLine) TypographyProfile {
	var profile TypographyProfile
	var total float64
	var boldCount int

	for _, line := range lines {
		if strings.TrimSpace(line.Text) == "" {
			continue
		}

		if profile.LineCount == 0 {
			profile.MaxFontSize = line.FontSize
			profile.MinFontSize = line.FontSize
		} else {
			if line.FontSize > profile.MaxFontSize {
				profile.MaxFontSize = line.FontSize
			}
			if line.FontSize < profile.MinFontSize {
				profile.MinFontSize = line.FontSize
			}
		}

		total += line.FontSize
		if line.Bold {
			boldCount++
		}
		profile.LineCount++
	}

	if profile.LineCount > 0 {
		profile.AvgFontSize = total / float64(profile.LineCount)
		profile.BoldRatio = float64(boldCount) / float64(profile.LineCount)
	}

	return profile
}
