// Package algo holds the pure rating and ranking rules used by core.
package algo

import (
	"github.com/huangsam/cruxaudit/schema"
)

// Rate returns the rating of value for metric m. Bounds are inclusive:
// a value equal to the good threshold is good, a value equal to the
// needs-improvement threshold is needs-improvement.
func Rate(m schema.MetricKey, value float64) schema.Rating {
	t := schema.GetThreshold(m)
	switch {
	case value <= t.Good:
		return schema.Good
	case value <= t.NeedsImprovement:
		return schema.NeedsImprovement
	default:
		return schema.Poor
	}
}

// RatingPoints converts a rating into scoreboard points.
func RatingPoints(r schema.Rating) int {
	switch r {
	case schema.Good:
		return 2
	case schema.NeedsImprovement:
		return 1
	default:
		return 0
	}
}

// Distribute folds histogram bins into rating buckets. A bin is assigned to the
// bucket that contains its start value.
func Distribute(m schema.MetricKey, bins []schema.HistogramBin) schema.Distribution {
	var d schema.Distribution
	t := schema.GetThreshold(m)
	for _, b := range bins {
		if !b.Density.Valid {
			continue
		}
		start := 0.0
		if b.Start.Valid {
			start = b.Start.Value
		}
		switch {
		case start < t.Good:
			d.Good += b.Density.Value
		case start < t.NeedsImprovement:
			d.NeedsImprovement += b.Density.Value
		default:
			d.Poor += b.Density.Value
		}
	}
	return d
}
