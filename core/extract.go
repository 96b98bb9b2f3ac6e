package core

import (
	"fmt"
	"math"

	"github.com/huangsam/cruxaudit/core/algo"
	"github.com/huangsam/cruxaudit/schema"
)

// ExtractFormFactor converts a current snapshot and an optional history into the
// normalized analysis of one form factor. hist may be nil.
func ExtractFormFactor(snap *schema.RawDeviceSnapshot, hist *schema.RawDeviceHistory) schema.FormFactorAnalysis {
	period := schema.UnknownPeriod
	if snap != nil {
		period = snap.CollectionPeriod.Label()
	}

	fa := schema.FormFactorAnalysis{
		LCP:              analyzeMetric(snap, schema.LCP),
		CLS:              analyzeMetric(snap, schema.CLS),
		INP:              analyzeMetric(snap, schema.INP),
		HistoryAvailable: hist != nil,
		CollectionPeriod: period,
	}
	fa.History = schema.TrendHistory{
		LCP: extractTrend(hist, schema.LCP, fa.LCP.Value, period),
		CLS: extractTrend(hist, schema.CLS, fa.CLS.Value, period),
		INP: extractTrend(hist, schema.INP, fa.INP.Value, period),
	}
	fa.Regressions = detectRegressions(fa)
	return fa
}

// analyzeMetric reads the p75 of metric m, treating an absent metric as 0.
func analyzeMetric(snap *schema.RawDeviceSnapshot, m schema.MetricKey) schema.MetricAnalysis {
	var value float64
	var dist schema.Distribution
	if snap != nil {
		if sm := snap.Metrics[m]; sm != nil {
			if sm.Percentiles.P75.Valid {
				value = sm.Percentiles.P75.Value
			}
			dist = algo.Distribute(m, sm.Histogram)
		}
	}
	return schema.MetricAnalysis{
		Value:        value,
		Rating:       algo.Rate(m, value),
		Distribution: dist,
	}
}

// extractTrend returns the valid p75 points of metric m in original order, each
// paired with its collection period label. Invalid entries are dropped together
// with their label. Without usable history the trend is the current value alone.
func extractTrend(hist *schema.RawDeviceHistory, m schema.MetricKey, current float64, currentPeriod string) schema.TrendSeries {
	fallback := schema.TrendSeries{
		Values:  []float64{current},
		Periods: []string{currentPeriod},
	}
	if hist == nil {
		return fallback
	}
	hm := hist.Metrics[m]
	if hm == nil {
		return fallback
	}

	series := schema.TrendSeries{Values: []float64{}, Periods: []string{}}
	for i, p := range hm.PercentilesTimeseries.P75s {
		if !p.Valid || math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		label := schema.UnknownPeriod
		if i < len(hist.CollectionPeriods) {
			label = hist.CollectionPeriods[i].Label()
		}
		series.Values = append(series.Values, p.Value)
		series.Periods = append(series.Periods, label)
	}
	if len(series.Values) == 0 {
		return fallback
	}
	return series
}

// detectRegressions applies the LCP trend heuristic and flags every poor metric.
func detectRegressions(fa schema.FormFactorAnalysis) []string {
	regressions := []string{}

	if msg, ok := lcpTrendRegression(fa.History.LCP.Values); ok {
		regressions = append(regressions, msg)
	}

	for _, m := range schema.AllMetrics {
		ma := fa.Metric(m)
		if ma.Rating == schema.Poor {
			regressions = append(regressions, fmt.Sprintf("Poor %s: %s", m.ShortName(), schema.FormatMetricValue(m, ma.Value)))
		}
	}
	return regressions
}

// lcpTrendRegression compares the first and last LCP points. It only fires when
// there are enough points, the first point is positive and the last exceeds it by
// more than the regression threshold.
func lcpTrendRegression(values []float64) (string, bool) {
	if len(values) < schema.MinRegressionPoints {
		return "", false
	}
	first, last := values[0], values[len(values)-1]
	if first <= 0 || last/first <= schema.RegressionThreshold {
		return "", false
	}
	pct := math.Round((last - first) / first * 100)
	return fmt.Sprintf("LCP regressed +%.0f%% across %d collection periods (%s → %s)",
		pct, len(values), schema.FormatMetricValue(schema.LCP, first), schema.FormatMetricValue(schema.LCP, last)), true
}
