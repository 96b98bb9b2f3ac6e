package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cruxaudit/internal/parquet"
)

// scoreboardCSVHeader matches the Parquet column names.
var scoreboardCSVHeader = []string{
	"run_id", "rank", "domain", "form_factor", "score", "passing",
	"lcp_ms", "lcp_rating", "cls", "cls_rating", "inp_ms", "inp_rating",
	"regressions", "collection_period",
}

// writeScoreboardCSV writes one CSV record per scoreboard row.
func writeScoreboardCSV(w io.Writer, rows []parquet.ScoreboardRow) error {
	return writeCSVWithHeader(w, scoreboardCSVHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			period := ""
			if r.CollectionPeriod != nil {
				period = *r.CollectionPeriod
			}
			record := []string{
				r.RunID,
				strconv.Itoa(int(r.Rank)),
				r.Domain,
				r.FormFactor,
				strconv.Itoa(int(r.Score)),
				strconv.FormatBool(r.Passing),
				formatRaw(r.LCPMs),
				r.LCPRating,
				formatRaw(r.CLS),
				r.CLSRating,
				formatRaw(r.INPMs),
				r.INPRating,
				strconv.Itoa(int(r.Regressions)),
				period,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// formatRaw prints a float with the fewest digits that round-trip.
func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
