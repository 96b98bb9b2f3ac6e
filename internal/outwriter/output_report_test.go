package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metric(v float64, r schema.Rating, good float64) schema.MetricAnalysis {
	return schema.MetricAnalysis{Value: v, Rating: r, Distribution: schema.Distribution{Good: good}}
}

func sampleResult(domain string, phoneLCP float64, phoneRating schema.Rating) schema.AnalysisResult {
	return schema.AnalysisResult{
		Domain: domain,
		Phone: schema.FormFactorAnalysis{
			LCP:              metric(phoneLCP, phoneRating, 0.71),
			CLS:              metric(0.05, schema.Good, 0.9),
			INP:              metric(180, schema.Good, 0.8),
			HistoryAvailable: true,
			Regressions:      []string{"LCP regressed 30% over 4 periods (1000ms to 1300ms)"},
			CollectionPeriod: "2026-02-01 to 2026-02-28",
		},
		Desktop: schema.FormFactorAnalysis{
			LCP:              metric(1200, schema.Good, 0.92),
			CLS:              metric(0.02, schema.Good, 0.95),
			INP:              metric(90, schema.Good, 0.97),
			CollectionPeriod: "2026-02-01 to 2026-02-28",
		},
	}
}

func completeReport() *schema.RunReport {
	return &schema.RunReport{
		ID:        "run-42",
		State:     schema.StateComplete,
		Targets:   []string{"https://example.com"},
		Results:   []schema.AnalysisResult{sampleResult("https://example.com", 1850, schema.Good)},
		Reports:   []schema.DomainReport{{Domain: "https://example.com", TrendNotes: "LCP rose steadily.", Report: "## Summary\nAll green."}},
		StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
	}
}

func textConfig() *contract.Config {
	return &contract.Config{Output: schema.TextOut, Precision: 1, Width: 200}
}

func TestWriteRunText_SingleDomain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRunText(&buf, completeReport(), textConfig()))
	out := buf.String()

	assert.Contains(t, out, "run-42")
	assert.Contains(t, out, "== example.com ==")
	assert.Contains(t, out, "1850ms")
	assert.Contains(t, out, "0.05")
	assert.Contains(t, out, "71.0%")
	assert.Contains(t, out, contract.GoodValue)
	assert.Contains(t, out, "Collection period: phone 2026-02-01 to 2026-02-28")
	assert.Contains(t, out, "  - phone: LCP regressed 30%")
	assert.Contains(t, out, "History unavailable for desktop")
	assert.NotContains(t, out, "History unavailable for phone")
	assert.Contains(t, out, "📈 Trend analysis\nLCP rose steadily.")
	assert.Contains(t, out, "📝 Report\n## Summary\nAll green.")
	assert.NotContains(t, out, "Scoreboard")
	assert.True(t, strings.HasSuffix(out, "✅ Audit complete: 1 domain(s) in 1.5s\n"))
}

func TestWriteRunText_Comparison(t *testing.T) {
	report := completeReport()
	report.Comparison = &schema.ComparisonReport{
		Scoreboard: []schema.ScoreboardEntry{
			{Rank: 1, Domain: "https://fast.example", Score: 12, Passing: true},
			{Rank: 2, Domain: "https://slow.example", Score: 8},
		},
		Verdict:   "fast.example ranks first with 12/12 points.",
		Narrative: "fast.example is ahead on every metric.",
	}

	var buf bytes.Buffer
	require.NoError(t, writeRunText(&buf, report, textConfig()))
	out := buf.String()

	assert.Contains(t, out, "🏁 Scoreboard")
	assert.Contains(t, out, "fast.example")
	assert.Contains(t, out, "12/12")
	assert.Contains(t, out, "8/12")
	assert.Contains(t, out, "Verdict: fast.example ranks first with 12/12 points.")
	assert.Contains(t, out, "fast.example is ahead on every metric.")
}

func TestWriteRunText_Failed(t *testing.T) {
	report := &schema.RunReport{
		ID:       "run-7",
		State:    schema.StateFailed,
		Failure:  schema.FailureConfiguration,
		Error:    "missing CrUX credential",
		Dropped:  []string{"https://k.example"},
		Duration: 2 * time.Millisecond,
	}

	var buf bytes.Buffer
	require.NoError(t, writeRunText(&buf, report, textConfig()))
	out := buf.String()

	assert.Contains(t, out, "dropped: https://k.example")
	assert.Contains(t, out, "❌ Audit failed (configuration error) after 2ms: missing CrUX credential")
	assert.NotContains(t, out, "==")
}

func TestFooter(t *testing.T) {
	report := completeReport()
	assert.Equal(t, "✅ Audit complete: 1 domain(s) in 1.5s", footer(report))

	report.Warnings = 2
	assert.Equal(t, "✅ Audit complete: 1 domain(s) in 1.5s with 2 warning(s)", footer(report))

	report.State = schema.StateFailed
	report.Failure = schema.FailureConfiguration
	report.Error = "missing CrUX API key or proxy URL"
	assert.Equal(t, "❌ Audit failed (configuration error) after 1.5s: missing CrUX API key or proxy URL", footer(report))
}

func TestPrintRunReport_JSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile, Precision: 1}

	require.NoError(t, PrintRunReport(completeReport(), cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var decoded schema.RunReport
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "run-42", decoded.ID)
	assert.Equal(t, schema.StateComplete, decoded.State)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, 1850.0, decoded.Results[0].Phone.LCP.Value)
	assert.Equal(t, "All green.", strings.Split(decoded.Reports[0].Report, "\n")[1])
}

func TestPrintRunReport_CSV(t *testing.T) {
	report := completeReport()
	report.Results = append(report.Results, sampleResult("https://b.example", 4500, schema.Poor))
	outputFile := filepath.Join(t.TempDir(), "scores.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outputFile, Precision: 1}

	require.NoError(t, PrintRunReport(report, cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 5) // header + 2 domains x 2 form factors
	assert.Equal(t, strings.Join(scoreboardCSVHeader, ","), lines[0])
	assert.Equal(t, "run-42,1,https://example.com,phone,12,true,1850,good,0.05,good,180,good,1,2026-02-01 to 2026-02-28", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "run-42,2,https://b.example,phone,10,false,4500,poor,"))
}

func TestPrintRunReport_Parquet(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "scores.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: outputFile, Precision: 1}

	require.NoError(t, PrintRunReport(completeReport(), cfg))

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPrintRunReport_TextFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.txt")
	cfg := textConfig()
	cfg.OutputFile = outputFile

	require.NoError(t, PrintRunReport(completeReport(), cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "== example.com ==")
}

func TestOutWriter_WriteRunReport(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "report.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile, Precision: 1}

	require.NoError(t, NewOutWriter().WriteRunReport(completeReport(), cfg))
	assert.FileExists(t, outputFile)
}

func TestRatedValue(t *testing.T) {
	assert.Equal(t, "2600ms", ratedValue(schema.LCP, metric(2600, schema.NeedsImprovement, 0), false))
	assert.Contains(t, ratedValue(schema.CLS, metric(0.3, schema.Poor, 0), true), "0.30")
}
