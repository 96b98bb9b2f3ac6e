package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintThresholds displays the fixed rating thresholds of every tracked metric.
// This is a static display that does not call the CrUX API.
func PrintThresholds(cfg *contract.Config) error {
	table := schema.AllThresholds()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, table)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeThresholdsCSV(w, table)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available for audit scoreboards")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeThresholdsText(w, table)
		}, "Wrote text")
	}
}

// writeThresholdsText displays the thresholds in human-readable text format.
func writeThresholdsText(w io.Writer, table []schema.MetricThreshold) error {
	out := &textWriter{w: w}
	out.printf("🚦 Core Web Vitals Thresholds\n")
	out.printf("=============================\n\n")
	if out.err != nil {
		return out.err
	}

	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Metric", contract.GoodValue, contract.NeedsImprovementValue, contract.PoorValue})
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, t := range table {
		good := schema.FormatMetricValue(t.Metric, t.Good)
		ni := schema.FormatMetricValue(t.Metric, t.NeedsImprovement)
		data = append(data, []string{
			t.Name,
			"<= " + good,
			fmt.Sprintf("%s - %s", good, ni),
			"> " + ni,
		})
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	if err := tbl.Render(); err != nil {
		return err
	}

	out.printf("\nRatings use the p75 of the latest 28-day collection period.\n")
	out.printf("Scoreboard points: 2 per good metric, 1 per needs-improvement metric, across phone and desktop.\n")
	return out.err
}

// writeThresholdsCSV writes the thresholds in CSV format.
func writeThresholdsCSV(w io.Writer, table []schema.MetricThreshold) error {
	return writeCSVWithHeader(w, []string{"metric", "name", "unit", "good", "needs_improvement"}, func(cw *csv.Writer) error {
		for _, t := range table {
			record := []string{
				string(t.Metric),
				t.Name,
				t.Unit,
				strconv.FormatFloat(t.Good, 'f', -1, 64),
				strconv.FormatFloat(t.NeedsImprovement, 'f', -1, 64),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
