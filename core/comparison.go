package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/cruxaudit/core/algo"
	"github.com/huangsam/cruxaudit/schema"
)

// Verdict summarizes a ranked scoreboard in one deterministic sentence pair.
func Verdict(board []schema.ScoreboardEntry) string {
	if len(board) == 0 {
		return "No domains were compared."
	}
	passing := 0
	for _, e := range board {
		if e.Passing {
			passing++
		}
	}
	top := board[0]
	return fmt.Sprintf("%s ranks first with %d/%d points. %d of %d domains pass every Core Web Vital on both form factors.",
		schema.DisplayDomain(top.Domain), top.Score, algo.MaxScore, passing, len(board))
}

// FormatScoreboardMarkdown renders the scoreboard as a Markdown table for prompts.
func FormatScoreboardMarkdown(board []schema.ScoreboardEntry) string {
	var sb strings.Builder
	sb.WriteString("| Rank | Domain | Score | Phone LCP | Phone CLS | Phone INP | Desktop LCP | Desktop CLS | Desktop INP | Regressions |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|---|---|\n")
	for _, e := range board {
		fmt.Fprintf(&sb, "| %d | %s | %d/%d | %s | %s | %s | %s | %s | %s | %d |\n",
			e.Rank, e.Domain, e.Score, algo.MaxScore,
			cell(schema.LCP, e.Phone.LCP), cell(schema.CLS, e.Phone.CLS), cell(schema.INP, e.Phone.INP),
			cell(schema.LCP, e.Desktop.LCP), cell(schema.CLS, e.Desktop.CLS), cell(schema.INP, e.Desktop.INP),
			e.Phone.Regressions+e.Desktop.Regressions)
	}
	return sb.String()
}

func cell(m schema.MetricKey, a schema.MetricAnalysis) string {
	return fmt.Sprintf("%s (%s)", schema.FormatMetricValue(m, a.Value), schema.FormatRating(a.Rating))
}
