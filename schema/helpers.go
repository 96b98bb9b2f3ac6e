package schema

import (
	"fmt"
	"strings"
)

// FormatMetricValue renders a metric value with its unit: "1850ms" for timings, "0.08" for CLS.
func FormatMetricValue(m MetricKey, v float64) string {
	if m == CLS {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.0f%s", v, m.Unit())
}

// FormatRating renders a rating for humans ("needs improvement" instead of "needs-improvement").
func FormatRating(r Rating) string {
	return strings.ReplaceAll(string(r), "-", " ")
}

// DisplayDomain strips the scheme from a normalized origin for compact tables.
func DisplayDomain(origin string) string {
	d := strings.TrimPrefix(origin, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimSuffix(d, "/")
}

// MetricThreshold is the rating table entry of one metric.
type MetricThreshold struct {
	Metric MetricKey `json:"metric"`
	Name   string    `json:"name"`
	Unit   string    `json:"unit"`
	Threshold
}

// AllThresholds returns the rating table in display order.
func AllThresholds() []MetricThreshold {
	table := make([]MetricThreshold, 0, len(AllMetrics))
	for _, m := range AllMetrics {
		table = append(table, MetricThreshold{Metric: m, Name: m.ShortName(), Unit: m.Unit(), Threshold: GetThreshold(m)})
	}
	return table
}
