package cmd

import (
	"github.com/huangsam/cruxaudit/core"
	"github.com/spf13/cobra"
)

// auditCmd runs the audit workflow over one or more domains.
var auditCmd = &cobra.Command{
	Use:   "audit [domain...]",
	Short: "Audit Core Web Vitals of up to 10 domains",
	Long: `Fetch the current CrUX snapshot and 25 weeks of history for each domain
on phone and desktop, rate LCP, CLS and INP, flag LCP regressions and write a
report per domain. Two or more domains are also ranked on a scoreboard.

Domains come from positional arguments and --targets. Only the first 10 are
audited; the rest are reported as dropped.

Trend notes and reports are written by an OpenAI-compatible model when
--llm-api-key (or OPENAI_API_KEY) is set. Without one, the metrics, ratings,
regressions and scoreboard are still produced and narratives are replaced by
placeholders.

The command exits non-zero when the run fails. Configuration errors (no
credential, no domains, bad proxy URL) are reported apart from processing
errors (CrUX API failures, cancellation).

Examples:
  # Audit one domain with an API key from the environment
  CRUX_API_KEY=... cruxaudit audit example.com

  # Compare three domains through a proxy and save JSON
  cruxaudit audit --api-key https://crux-proxy.example/api \
    -t example.com,example.org,example.net --output json --output-file audit.json

  # Export the scoreboard to Parquet
  cruxaudit audit a.com b.com --output parquet --output-file scores.parquet`,
	PreRunE: sharedSetupWrapper,
	RunE:    runWith(core.ExecuteAudit),
}
