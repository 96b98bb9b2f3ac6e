package schema

// Distribution holds the share of sessions in each rating bucket, taken from the snapshot histogram.
type Distribution struct {
	Good             float64 `json:"good"`
	NeedsImprovement float64 `json:"needs_improvement"`
	Poor             float64 `json:"poor"`
}

// MetricAnalysis is the derived value and rating of one metric.
// Value is milliseconds for LCP and INP, a unitless score for CLS.
type MetricAnalysis struct {
	Value        float64      `json:"value"`
	Rating       Rating       `json:"rating"`
	Distribution Distribution `json:"distribution"`
}

// TrendSeries is a metric's p75 history with the collection period label of each point.
// Values and Periods always have the same length.
type TrendSeries struct {
	Values  []float64 `json:"values"`
	Periods []string  `json:"periods"`
}

// TrendHistory holds one trend series per tracked metric.
type TrendHistory struct {
	LCP TrendSeries `json:"lcp"`
	CLS TrendSeries `json:"cls"`
	INP TrendSeries `json:"inp"`
}

// Series returns the trend series of metric m.
func (h TrendHistory) Series(m MetricKey) TrendSeries {
	switch m {
	case CLS:
		return h.CLS
	case INP:
		return h.INP
	default:
		return h.LCP
	}
}

// FormFactorAnalysis is the aggregate for one (domain, form factor) pair.
// It is built once per audit cycle and not modified afterwards.
type FormFactorAnalysis struct {
	LCP              MetricAnalysis `json:"lcp"`
	CLS              MetricAnalysis `json:"cls"`
	INP              MetricAnalysis `json:"inp"`
	History          TrendHistory   `json:"history"`
	HistoryAvailable bool           `json:"history_available"`
	Regressions      []string       `json:"regressions"`
	CollectionPeriod string         `json:"collection_period"`
}

// Metric returns the analysis of metric m.
func (f FormFactorAnalysis) Metric(m MetricKey) MetricAnalysis {
	switch m {
	case CLS:
		return f.CLS
	case INP:
		return f.INP
	default:
		return f.LCP
	}
}

// AnalysisResult is the per-domain aggregate passed between workflow stages.
type AnalysisResult struct {
	Domain  string             `json:"domain"`
	Phone   FormFactorAnalysis `json:"phone"`
	Desktop FormFactorAnalysis `json:"desktop"`
}

// FormFactor returns the analysis for form factor ff.
func (r AnalysisResult) FormFactor(ff FormFactor) FormFactorAnalysis {
	if ff == Desktop {
		return r.Desktop
	}
	return r.Phone
}

// FetchOutcome is what the fetch stage hands back to the orchestrator.
// Histories holds nil for a form factor whose history call failed; the matching
// HistoryErrors entry explains why.
type FetchOutcome struct {
	Result        AnalysisResult
	Snapshots     map[FormFactor]*RawDeviceSnapshot
	Histories     map[FormFactor]*RawDeviceHistory
	HistoryErrors map[FormFactor]error
}

// SynthesisMetric is a metric value and rating without distribution or trend data.
type SynthesisMetric struct {
	Value  float64 `json:"value"`
	Rating Rating  `json:"rating"`
}

// SynthesisFormFactor is the reduced view of a FormFactorAnalysis sent to the report synthesizer.
type SynthesisFormFactor struct {
	LCP              SynthesisMetric `json:"lcp"`
	CLS              SynthesisMetric `json:"cls"`
	INP              SynthesisMetric `json:"inp"`
	Regressions      []string        `json:"regressions"`
	CollectionPeriod string          `json:"collection_period"`
	TrendPoints      int             `json:"trend_points"`
}

// SynthesisInput is the reduced projection of an AnalysisResult. Raw trend arrays are
// omitted because the narrator has already analyzed them.
type SynthesisInput struct {
	Domain  string              `json:"domain"`
	Phone   SynthesisFormFactor `json:"phone"`
	Desktop SynthesisFormFactor `json:"desktop"`
}

// ScoreLine summarizes one form factor of a domain on the scoreboard.
type ScoreLine struct {
	LCP         MetricAnalysis `json:"lcp"`
	CLS         MetricAnalysis `json:"cls"`
	INP         MetricAnalysis `json:"inp"`
	Regressions int            `json:"regressions"`
}

// ScoreboardEntry is one row of the batch comparison.
type ScoreboardEntry struct {
	Rank    int       `json:"rank"`
	Domain  string    `json:"domain"`
	Score   int       `json:"score"`
	Passing bool      `json:"passing"`
	Phone   ScoreLine `json:"phone"`
	Desktop ScoreLine `json:"desktop"`
}

// ComparisonReport is the batch comparison across all processed domains.
type ComparisonReport struct {
	Scoreboard []ScoreboardEntry `json:"scoreboard"`
	Verdict    string            `json:"verdict"`
	Narrative  string            `json:"narrative"`
}
