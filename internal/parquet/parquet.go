// Package parquet provides data structures and functions for exporting audit
// scoreboards to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/cruxaudit/core/algo"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoreboardRow is one (domain, form factor) line of an audit run.
type ScoreboardRow struct {
	// RunID identifies the audit run the row belongs to
	RunID string `parquet:"run_id,snappy"`

	// AuditTime is when the run started (stored as TIMESTAMP with nanosecond precision)
	AuditTime time.Time `parquet:"audit_time,snappy"`

	// Rank is the 1-based position of the domain on the scoreboard
	Rank int32 `parquet:"rank,snappy"`

	Domain     string `parquet:"domain,snappy"`
	FormFactor string `parquet:"form_factor,snappy"`

	// Score is the domain-wide score, shared by both form factor rows
	Score   int32 `parquet:"score,snappy"`
	Passing bool  `parquet:"passing,snappy"`

	LCPMs     float64 `parquet:"lcp_ms,snappy"`
	LCPRating string  `parquet:"lcp_rating,snappy"`
	CLS       float64 `parquet:"cls,snappy"`
	CLSRating string  `parquet:"cls_rating,snappy"`
	INPMs     float64 `parquet:"inp_ms,snappy"`
	INPRating string  `parquet:"inp_rating,snappy"`

	// Regressions is the number of flagged regressions for the form factor
	Regressions int32 `parquet:"regressions,snappy"`

	// CollectionPeriod is the snapshot period label (nullable when unknown)
	CollectionPeriod *string `parquet:"collection_period,optional,snappy"`
}

// Scoreboard returns the ranked scoreboard of a run. It reuses the batch
// comparison when the run produced one and ranks the results otherwise.
func Scoreboard(report *schema.RunReport) []schema.ScoreboardEntry {
	if report.Comparison != nil && len(report.Comparison.Scoreboard) > 0 {
		return report.Comparison.Scoreboard
	}
	return algo.BuildScoreboard(report.Results)
}

// BuildScoreboardRows flattens a run into two rows per domain, phone first.
func BuildScoreboardRows(report *schema.RunReport) []ScoreboardRow {
	periods := make(map[string]schema.AnalysisResult, len(report.Results))
	for _, r := range report.Results {
		periods[r.Domain] = r
	}

	var rows []ScoreboardRow
	for _, entry := range Scoreboard(report) {
		for _, ff := range schema.AllFormFactors {
			line := entry.Phone
			if ff == schema.Desktop {
				line = entry.Desktop
			}
			row := ScoreboardRow{
				RunID:       report.ID,
				AuditTime:   report.StartedAt,
				Rank:        int32(entry.Rank),
				Domain:      entry.Domain,
				FormFactor:  string(ff),
				Score:       int32(entry.Score),
				Passing:     entry.Passing,
				LCPMs:       line.LCP.Value,
				LCPRating:   string(line.LCP.Rating),
				CLS:         line.CLS.Value,
				CLSRating:   string(line.CLS.Rating),
				INPMs:       line.INP.Value,
				INPRating:   string(line.INP.Rating),
				Regressions: int32(line.Regressions),
			}
			if r, ok := periods[entry.Domain]; ok {
				if p := r.FormFactor(ff).CollectionPeriod; p != "" && p != schema.UnknownPeriod {
					row.CollectionPeriod = &p
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteScoreboard writes rows to w as a Parquet file.
func WriteScoreboard(w io.Writer, rows []ScoreboardRow) error {
	// The schema is derived from the ScoreboardRow struct tags
	writer := parquet.NewGenericWriter[ScoreboardRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteScoreboardParquet writes rows to a Parquet file at outputPath.
func WriteScoreboardParquet(rows []ScoreboardRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteScoreboard(file, rows)
}
