package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Numeric is a CrUX value that may arrive as a JSON number, a decimal string
// (CLS is encoded that way) or null. Null, unparsable and non-finite values
// decode as invalid so callers can drop them instead of substituting zero.
type Numeric struct {
	Value float64
	Valid bool
}

// NewNumeric returns a valid Numeric holding v.
func NewNumeric(v float64) Numeric {
	return Numeric{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	*n = Numeric{}
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = NewNumeric(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// CrUXDate is a calendar date as returned by the CrUX API.
type CrUXDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String renders the date as YYYY-MM-DD.
func (d CrUXDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// CollectionPeriod is the date range a percentile report aggregates over.
type CollectionPeriod struct {
	FirstDate CrUXDate `json:"firstDate"`
	LastDate  CrUXDate `json:"lastDate"`
}

// Label renders the period as "YYYY-MM-DD to YYYY-MM-DD", or UnknownPeriod when p is nil.
func (p *CollectionPeriod) Label() string {
	if p == nil {
		return UnknownPeriod
	}
	return p.FirstDate.String() + " to " + p.LastDate.String()
}

// HistogramBin is one bucket of a metric distribution.
type HistogramBin struct {
	Start   Numeric `json:"start"`
	End     Numeric `json:"end"`
	Density Numeric `json:"density"`
}

// Percentiles holds the percentile values of a snapshot metric.
type Percentiles struct {
	P75 Numeric `json:"p75"`
}

// SnapshotMetric is one metric of the current percentile report.
type SnapshotMetric struct {
	Histogram   []HistogramBin `json:"histogram"`
	Percentiles Percentiles    `json:"percentiles"`
}

// RecordKey identifies the (origin, form factor) pair a record describes.
type RecordKey struct {
	Origin     string `json:"origin,omitempty"`
	FormFactor string `json:"formFactor,omitempty"`
}

// RawDeviceSnapshot is the decoded current percentile report for one (domain, form factor) pair.
type RawDeviceSnapshot struct {
	Key              RecordKey                     `json:"key"`
	Metrics          map[MetricKey]*SnapshotMetric `json:"metrics"`
	CollectionPeriod *CollectionPeriod             `json:"collectionPeriod,omitempty"`
}

// HasTrackedMetrics reports whether at least one of LCP, CLS and INP is present.
func (s *RawDeviceSnapshot) HasTrackedMetrics() bool {
	if s == nil {
		return false
	}
	for _, m := range AllMetrics {
		if s.Metrics[m] != nil {
			return true
		}
	}
	return false
}

// PercentilesTimeseries holds one percentile value per collection period.
type PercentilesTimeseries struct {
	P75s []Numeric `json:"p75s"`
}

// HistoryMetric is one metric of the history report.
type HistoryMetric struct {
	PercentilesTimeseries PercentilesTimeseries `json:"percentilesTimeseries"`
}

// RawDeviceHistory is the decoded time-series report for one (domain, form factor) pair.
// Entries of P75s line up with CollectionPeriods and may be invalid for weeks without data.
type RawDeviceHistory struct {
	Key               RecordKey                    `json:"key"`
	Metrics           map[MetricKey]*HistoryMetric `json:"metrics"`
	CollectionPeriods []CollectionPeriod           `json:"collectionPeriods"`
}

// APIError is the application-level error object the CrUX API (or a proxy) may return.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("crux api error %d (%s): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("crux api error %d: %s", e.Code, e.Message)
}

// SnapshotResponse is the envelope of a queryRecord call.
type SnapshotResponse struct {
	Record *RawDeviceSnapshot `json:"record"`
	Error  *APIError          `json:"error,omitempty"`
}

// HistoryResponse is the envelope of a queryHistoryRecord call.
type HistoryResponse struct {
	Record *RawDeviceHistory `json:"record"`
	Error  *APIError         `json:"error,omitempty"`
}

// QueryRequest is the request body of both CrUX record endpoints.
type QueryRequest struct {
	Origin                string   `json:"origin"`
	FormFactor            string   `json:"formFactor"`
	Metrics               []string `json:"metrics,omitempty"`
	CollectionPeriodCount int      `json:"collectionPeriodCount,omitempty"`
}
