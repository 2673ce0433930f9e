package trace

// TraceSummary aggregates statistics from a GenerationTrace.
type TraceSummary struct {
	TruncatedGroups  int
	DroppedCalls     int
	DroppedAnswered  int
	AffectedLines    int
	LineDistribution map[string]int // phone line → number of truncated days
}

// Summarize computes aggregate statistics from a GenerationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(gt *GenerationTrace) *TraceSummary {
	summary := &TraceSummary{
		LineDistribution: make(map[string]int),
	}
	if gt == nil {
		return summary
	}

	summary.TruncatedGroups = len(gt.Truncations)
	for _, r := range gt.Truncations {
		summary.DroppedCalls += r.Dropped()
		summary.DroppedAnswered += r.DroppedAnswered
		summary.LineDistribution[r.PhoneLine]++
	}
	summary.AffectedLines = len(summary.LineDistribution)

	return summary
}
