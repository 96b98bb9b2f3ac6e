package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMetricValue(t *testing.T) {
	tests := []struct {
		metric MetricKey
		value  float64
		want   string
	}{
		{LCP, 1850, "1850ms"},
		{LCP, 2500.4, "2500ms"},
		{INP, 199.6, "200ms"},
		{CLS, 0.08, "0.08"},
		{CLS, 0.126, "0.13"},
		{CLS, 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMetricValue(tt.metric, tt.value))
		})
	}
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "good", FormatRating(Good))
	assert.Equal(t, "needs improvement", FormatRating(NeedsImprovement))
	assert.Equal(t, "poor", FormatRating(Poor))
}

func TestDisplayDomain(t *testing.T) {
	assert.Equal(t, "example.com", DisplayDomain("https://example.com"))
	assert.Equal(t, "example.com", DisplayDomain("http://example.com/"))
	assert.Equal(t, "shop.example.com", DisplayDomain("shop.example.com"))
}

func TestAllThresholds(t *testing.T) {
	table := AllThresholds()

	require.Len(t, table, 3)
	assert.Equal(t, LCP, table[0].Metric)
	assert.Equal(t, "LCP", table[0].Name)
	assert.Equal(t, "ms", table[0].Unit)
	assert.Equal(t, 2500.0, table[0].Good)
	assert.Equal(t, 4000.0, table[0].NeedsImprovement)
	assert.Equal(t, "", table[1].Unit)
	assert.Equal(t, 0.25, table[1].NeedsImprovement)
	assert.Equal(t, 200.0, table[2].Good)
}

func TestMetricKeyHelpers(t *testing.T) {
	assert.Equal(t, "INP", INP.ShortName())
	assert.Equal(t, "custom", MetricKey("custom").ShortName())
	assert.Equal(t, "PHONE", Phone.APIName())
	assert.Equal(t, "DESKTOP", Desktop.APIName())
	assert.Equal(t, "ALL_FORM_FACTORS", FormFactor("tablet").APIName())
}

func TestRunReportSucceeded(t *testing.T) {
	var nilReport *RunReport
	assert.False(t, nilReport.Succeeded())
	assert.False(t, (&RunReport{State: StateFailed}).Succeeded())
	assert.True(t, (&RunReport{State: StateComplete}).Succeeded())
}
