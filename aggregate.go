package pdfoutline

// Per-method score contributions. The aggregator is the only component that
// knows the relative weights of the detection strategies; the font tier
// (up to 6) comes from TypographyScorer.Tier.
const (
	patternBonus  = 5
	keywordBonus  = 3
	boldBonus     = 4
	positionBonus = 2
)

// CandidateAggregator combines per-line signals from all strategies into a
// single accepted candidate per line, or none. A line is considered at all
// only when at least one strategy proposed it; the aggregate score then
// decides acceptance against the configured threshold, which is the primary
// precision control.
type CandidateAggregator struct {
	scorers    []Scorer
	typography *TypographyScorer
	config     Config
}

// NewCandidateAggregator builds an aggregator over a priority-ordered list
// of scorers (highest confidence first).
func NewCandidateAggregator(scorers []Scorer, typography *TypographyScorer, config Config) *CandidateAggregator {
	return &CandidateAggregator{
		scorers:    scorers,
		typography: typography,
		config:     config,
	}
}

// Aggregate scores every line and returns the accepted candidates in
// stream order.
func (a *CandidateAggregator) Aggregate(lines []TextLine, profile TypographyProfile) []Candidate {
	var accepted []Candidate

	for i, line := range lines {
		var proposals []*Candidate
		for _, scorer := range a.scorers {
			if c := scorer.Score(i, line, profile); c != nil {
				proposals = append(proposals, c)
			}
		}
		if len(proposals) == 0 {
			continue
		}

		score := a.typography.Tier(line, profile)
		if line.Bold {
			score += boldBonus
		}
		for _, p := range proposals {
			switch p.Method {
			case MethodPattern:
				score += patternBonus
			case MethodContent:
				score += keywordBonus
			case MethodPosition:
				score += positionBonus
			}
		}

		if score < a.config.ScoreThreshold {
			continue
		}

		// The scorer list is priority ordered, so the first proposal with
		// the maximum confidence wins ties.
		best := proposals[0]
		for _, p := range proposals[1:] {
			if p.Confidence > best.Confidence {
				best = p
			}
		}

		candidate := Candidate{
			Index:      i,
			Span:       1,
			Line:       line,
			Score:      score,
			Confidence: best.Confidence,
			Method:     best.Method,
		}
		for _, p := range proposals {
			if p.Method == MethodPattern {
				candidate.Level = p.Level
				break
			}
		}

		accepted = append(accepted, candidate)
	}

	return accepted
}
