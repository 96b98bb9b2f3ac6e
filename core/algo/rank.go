package algo

import (
	"sort"

	"github.com/huangsam/cruxaudit/schema"
)

// MaxScore is the score of a domain with every metric rated good on both form factors.
const MaxScore = 12

// BuildScoreboard scores every result and ranks them. The returned slice always
// has exactly one entry per result.
func BuildScoreboard(results []schema.AnalysisResult) []schema.ScoreboardEntry {
	entries := make([]schema.ScoreboardEntry, 0, len(results))
	for _, r := range results {
		score, passing := ScoreResult(r)
		entries = append(entries, schema.ScoreboardEntry{
			Domain:  r.Domain,
			Score:   score,
			Passing: passing,
			Phone:   ScoreLineFor(r.Phone),
			Desktop: ScoreLineFor(r.Desktop),
		})
	}
	return RankScoreboard(entries)
}

// RankScoreboard sorts scoreboard entries by score in descending order and
// assigns 1-based ranks. Ties are broken by phone LCP (lower is better) and
// then by submission order, so every input entry appears exactly once.
func RankScoreboard(entries []schema.ScoreboardEntry) []schema.ScoreboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Phone.LCP.Value < entries[j].Phone.LCP.Value
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// ScoreLineFor summarizes one form factor for the scoreboard.
func ScoreLineFor(f schema.FormFactorAnalysis) schema.ScoreLine {
	return schema.ScoreLine{
		LCP:         f.LCP,
		CLS:         f.CLS,
		INP:         f.INP,
		Regressions: len(f.Regressions),
	}
}

// ScoreResult computes the scoreboard points of a domain: two points for each
// good metric and one for each needs-improvement metric, across both form factors.
// A domain passes when every metric on both form factors is rated good.
func ScoreResult(r schema.AnalysisResult) (score int, passing bool) {
	passing = true
	for _, ff := range schema.AllFormFactors {
		fa := r.FormFactor(ff)
		for _, m := range schema.AllMetrics {
			rating := fa.Metric(m).Rating
			score += RatingPoints(rating)
			if rating != schema.Good {
				passing = false
			}
		}
	}
	return score, passing
}
