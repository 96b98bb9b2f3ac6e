package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cruxaudit/core/algo"
	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/internal/parquet"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintRunReport outputs an audit run, dispatching based on the output format configured.
func PrintRunReport(report *schema.RunReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreboardCSV(w, parquet.BuildScoreboardRows(report))
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteScoreboardParquet(parquet.BuildScoreboardRows(report), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunText(w, report, cfg)
		}, "Wrote report")
	}
	return nil
}

// textWriter remembers the first write error so long reports read top to bottom.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// writeRunText writes the human-readable report of a run.
func writeRunText(w io.Writer, report *schema.RunReport, cfg *contract.Config) error {
	out := &textWriter{w: w}
	out.printf("🔎 CrUX Audit (run %s)\n", report.ID)
	if len(report.Dropped) > 0 {
		out.printf("⚠️  Batch limited to %d domains; dropped: %s\n", schema.MaxBatchSize, strings.Join(report.Dropped, ", "))
	}

	for i, result := range report.Results {
		var dr schema.DomainReport
		if i < len(report.Reports) {
			dr = report.Reports[i]
		}
		if err := writeDomainText(out, result, dr, cfg); err != nil {
			return err
		}
	}

	if report.Comparison != nil {
		if err := writeComparisonText(out, report.Comparison, cfg); err != nil {
			return err
		}
	}

	out.printf("\n%s\n", footer(report))
	return out.err
}

// writeDomainText writes the metric table and narratives of one domain.
func writeDomainText(out *textWriter, result schema.AnalysisResult, dr schema.DomainReport, cfg *contract.Config) error {
	fmtShare := createShareFormatter(cfg.Precision)
	out.printf("\n== %s ==\n", schema.DisplayDomain(result.Domain))
	if out.err != nil {
		return out.err
	}

	table := tablewriter.NewWriter(out.w)
	table.Header([]string{"Metric", "Phone", "Rating", "Good", "Desktop", "Rating", "Good"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range schema.AllMetrics {
		phone, desktop := result.Phone.Metric(m), result.Desktop.Metric(m)
		data = append(data, []string{
			m.ShortName(),
			schema.FormatMetricValue(m, phone.Value),
			ratingLabel(phone.Rating, cfg.UseColors),
			fmtShare(phone.Distribution.Good),
			schema.FormatMetricValue(m, desktop.Value),
			ratingLabel(desktop.Rating, cfg.UseColors),
			fmtShare(desktop.Distribution.Good),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	out.printf("Collection period: phone %s, desktop %s\n", result.Phone.CollectionPeriod, result.Desktop.CollectionPeriod)
	regressions := 0
	for _, ff := range schema.AllFormFactors {
		fa := result.FormFactor(ff)
		if !fa.HistoryAvailable {
			out.printf("History unavailable for %s; trend uses the current value only.\n", ff)
		}
		for _, r := range fa.Regressions {
			if regressions == 0 {
				out.printf("Regressions:\n")
			}
			out.printf("  - %s: %s\n", ff, r)
			regressions++
		}
	}
	if regressions == 0 {
		out.printf("Regressions: none\n")
	}

	if dr.TrendNotes != "" {
		out.printf("\n📈 Trend analysis\n%s\n", strings.TrimSpace(dr.TrendNotes))
	}
	if dr.Report != "" {
		out.printf("\n📝 Report\n%s\n", strings.TrimSpace(dr.Report))
	}
	return out.err
}

// writeComparisonText writes the scoreboard, verdict and comparison narrative.
func writeComparisonText(out *textWriter, comparison *schema.ComparisonReport, cfg *contract.Config) error {
	out.printf("\n🏁 Scoreboard\n")
	if out.err != nil {
		return out.err
	}

	table := tablewriter.NewWriter(out.w)
	headers := []string{"Rank", "Domain", "Score"}
	for _, ff := range schema.AllFormFactors {
		for _, m := range schema.AllMetrics {
			headers = append(headers, fmt.Sprintf("%s %s", ff, m.ShortName()))
		}
	}
	headers = append(headers, "Pass")
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	domainWidth := getMaxTableDomainWidth(cfg)
	var data [][]string
	for _, e := range comparison.Scoreboard {
		row := []string{
			strconv.Itoa(e.Rank),
			contract.TruncateText(schema.DisplayDomain(e.Domain), domainWidth),
			fmt.Sprintf("%d/%d", e.Score, algo.MaxScore),
		}
		for _, line := range []schema.ScoreLine{e.Phone, e.Desktop} {
			row = append(row,
				ratedValue(schema.LCP, line.LCP, cfg.UseColors),
				ratedValue(schema.CLS, line.CLS, cfg.UseColors),
				ratedValue(schema.INP, line.INP, cfg.UseColors),
			)
		}
		row = append(row, passLabel(e.Passing))
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	out.printf("Verdict: %s\n", comparison.Verdict)
	if comparison.Narrative != "" {
		out.printf("\n%s\n", strings.TrimSpace(comparison.Narrative))
	}
	return out.err
}

// ratedValue renders a metric value, colored by its rating when enabled.
func ratedValue(m schema.MetricKey, a schema.MetricAnalysis, useColors bool) string {
	v := schema.FormatMetricValue(m, a.Value)
	if !useColors {
		return v
	}
	switch a.Rating {
	case schema.Good:
		return contract.GoodColor.Sprint(v)
	case schema.NeedsImprovement:
		return contract.NeedsImprovementColor.Sprint(v)
	default:
		return contract.PoorColor.Sprint(v)
	}
}

func passLabel(passing bool) string {
	if passing {
		return "yes"
	}
	return "no"
}

// footer summarizes how the run ended.
func footer(report *schema.RunReport) string {
	duration := report.Duration.Round(time.Millisecond)
	if report.Succeeded() {
		msg := fmt.Sprintf("✅ Audit complete: %d domain(s) in %s", len(report.Results), duration)
		if report.Warnings > 0 {
			msg += fmt.Sprintf(" with %d warning(s)", report.Warnings)
		}
		return msg
	}
	return fmt.Sprintf("❌ Audit failed (%s error) after %s: %s", report.Failure, duration, report.Error)
}
