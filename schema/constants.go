package schema

// Custom string types for type safety.
type (
	// MetricKey identifies one of the tracked Core Web Vitals.
	MetricKey string

	// FormFactor represents the device class a CrUX report is segmented by.
	FormFactor string

	// Rating represents the qualitative bucket of a metric value.
	Rating string

	// OutputMode represents the format of the output.
	OutputMode string

	// WorkflowState represents the active state of the audit state machine.
	WorkflowState string

	// FailureKind distinguishes why a run ended in the Failed state.
	FailureKind string

	// Severity represents the level of a run log entry.
	Severity string
)

// Tracked metrics. The values double as the CrUX API metric names.
const (
	LCP MetricKey = "largest_contentful_paint"
	CLS MetricKey = "cumulative_layout_shift"
	INP MetricKey = "interaction_to_next_paint"
)

// All form factors audited per domain.
const (
	Phone   FormFactor = "phone"
	Desktop FormFactor = "desktop"
)

// All ratings supported.
const (
	Good             Rating = "good"
	NeedsImprovement Rating = "needs-improvement"
	Poor             Rating = "poor"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All workflow states.
const (
	StateIdle         WorkflowState = "idle"
	StateFetching     WorkflowState = "fetching"
	StateNarrating    WorkflowState = "narrating"
	StateSynthesizing WorkflowState = "synthesizing"
	StateComplete     WorkflowState = "complete"
	StateFailed       WorkflowState = "failed"
)

// Failure kinds reported on a Failed run.
const (
	FailureNone          FailureKind = ""
	FailureConfiguration FailureKind = "configuration"
	FailureProcessing    FailureKind = "processing"
)

// Log severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Audit constants. These are fixed product decisions, not user configuration.
const (
	// MaxBatchSize is the maximum number of domains processed in one run.
	MaxBatchSize = 10

	// HistoryWindows is the number of weekly collection periods requested from the history API.
	HistoryWindows = 25

	// MinRegressionPoints is the minimum LCP trend length before the regression check applies.
	MinRegressionPoints = 4

	// RegressionThreshold is the last/first LCP ratio that must be exceeded to flag a regression.
	RegressionThreshold = 1.15

	// JumpThresholdPct is the week-over-week jump the narrator is asked to flag.
	JumpThresholdPct = 10

	// UnknownPeriod is the collection period label used when the report carries none.
	UnknownPeriod = "Unknown"
)

// AllMetrics lists the tracked metrics in display order.
var AllMetrics = []MetricKey{LCP, CLS, INP}

// AllFormFactors lists the audited form factors in display order.
var AllFormFactors = []FormFactor{Phone, Desktop}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ShortName returns the abbreviation used in reports (LCP, CLS, INP).
func (m MetricKey) ShortName() string {
	switch m {
	case LCP:
		return "LCP"
	case CLS:
		return "CLS"
	case INP:
		return "INP"
	default:
		return string(m)
	}
}

// Unit returns the display unit of the metric. CLS is unitless.
func (m MetricKey) Unit() string {
	if m == CLS {
		return ""
	}
	return "ms"
}

// APIName returns the form factor as the CrUX API expects it.
func (f FormFactor) APIName() string {
	switch f {
	case Phone:
		return "PHONE"
	case Desktop:
		return "DESKTOP"
	default:
		return "ALL_FORM_FACTORS"
	}
}

// Threshold holds the inclusive upper bounds of the good and needs-improvement buckets.
type Threshold struct {
	Good             float64 `json:"good"`
	NeedsImprovement float64 `json:"needs_improvement"`
}

// GetThreshold returns the fixed rating threshold for a given metric.
func GetThreshold(m MetricKey) Threshold {
	switch m {
	case CLS:
		return Threshold{Good: 0.10, NeedsImprovement: 0.25}
	case INP:
		return Threshold{Good: 200, NeedsImprovement: 500}
	default: // LCP
		return Threshold{Good: 2500, NeedsImprovement: 4000}
	}
}
