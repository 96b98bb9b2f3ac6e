package cmd

import (
	"github.com/huangsam/cruxaudit/core"
	"github.com/spf13/cobra"
)

// thresholdsCmd displays the fixed rating thresholds.
var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Display the Core Web Vitals rating thresholds",
	Long: `Show the good and needs-improvement bounds used to rate LCP, CLS and INP.

No CrUX data is fetched - this is purely informational.

Examples:
  cruxaudit thresholds
  cruxaudit thresholds --output json`,
	PreRunE: sharedSetupWrapper,
	RunE:    runWith(core.ExecuteThresholds),
}
