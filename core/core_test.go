package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const proxySnapshot = `{
	"record": {
		"metrics": {
			"largest_contentful_paint": {"percentiles": {"p75": 2100}},
			"cumulative_layout_shift": {"percentiles": {"p75": "0.05"}},
			"interaction_to_next_paint": {"percentiles": {"p75": 180}}
		},
		"collectionPeriod": {
			"firstDate": {"year": 2026, "month": 2, "day": 1},
			"lastDate": {"year": 2026, "month": 2, "day": 28}
		}
	}
}`

const proxyHistory = `{
	"record": {
		"metrics": {
			"largest_contentful_paint": {"percentilesTimeseries": {"p75s": [2000, 2050, 2100]}}
		},
		"collectionPeriods": [
			{"firstDate": {"year": 2026, "month": 1, "day": 1}, "lastDate": {"year": 2026, "month": 1, "day": 28}},
			{"firstDate": {"year": 2026, "month": 1, "day": 8}, "lastDate": {"year": 2026, "month": 2, "day": 4}},
			{"firstDate": {"year": 2026, "month": 1, "day": 15}, "lastDate": {"year": 2026, "month": 2, "day": 11}}
		]
	}
}`

func newProxy(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("endpoint") == "history" {
			_, _ = w.Write([]byte(proxyHistory))
			return
		}
		_, _ = w.Write([]byte(proxySnapshot))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func jsonConfig(t *testing.T) *contract.Config {
	return &contract.Config{
		Output:       schema.JSONOut,
		OutputFile:   filepath.Join(t.TempDir(), "report.json"),
		Precision:    1,
		Quiet:        true,
		HTTPTimeout:  5 * time.Second,
		RetryBackoff: time.Millisecond,
		PromptsDir:   t.TempDir(),
	}
}

func readReport(t *testing.T, path string) schema.RunReport {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var report schema.RunReport
	require.NoError(t, json.Unmarshal(content, &report))
	return report
}

func TestExecuteAudit_ThroughProxy(t *testing.T) {
	srv := newProxy(t)
	cfg := jsonConfig(t)
	cfg.Credential = srv.URL
	cfg.Targets = []string{"a.example", "b.example"}

	require.NoError(t, ExecuteAudit(context.Background(), cfg))

	report := readReport(t, cfg.OutputFile)
	assert.Equal(t, schema.StateComplete, report.State)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "https://a.example", report.Results[0].Domain)
	assert.Equal(t, 2100.0, report.Results[0].Phone.LCP.Value)
	assert.Len(t, report.Results[0].Phone.History.LCP.Values, 3)
	require.NotNil(t, report.Comparison)
	assert.Len(t, report.Comparison.Scoreboard, 2)
	// No language model is configured, so narratives are placeholders.
	assert.Contains(t, report.Reports[0].TrendNotes, "unavailable")
}

func TestExecuteAudit_MissingCredential(t *testing.T) {
	cfg := jsonConfig(t)
	cfg.Targets = []string{"a.example"}

	err := ExecuteAudit(context.Background(), cfg)

	var failed *AuditFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, schema.FailureConfiguration, failed.Kind)
	assert.Contains(t, err.Error(), "configuration error")

	report := readReport(t, cfg.OutputFile)
	assert.Equal(t, schema.StateFailed, report.State)
	assert.Empty(t, report.Results)
}

func TestExecuteAudit_ProcessingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "chrome ux report data not found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()
	cfg := jsonConfig(t)
	cfg.Credential = srv.URL
	cfg.Targets = []string{"missing.example"}

	err := ExecuteAudit(context.Background(), cfg)

	var failed *AuditFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, schema.FailureProcessing, failed.Kind)
	assert.Contains(t, failed.Message, "missing.example")
}

func TestRunAudit_InvalidProxyIsConfigurationFailure(t *testing.T) {
	cfg := jsonConfig(t)
	cfg.Credential = "https://"
	cfg.Targets = []string{"a.example"}

	report := RunAudit(context.Background(), cfg)

	assert.Equal(t, schema.StateFailed, report.State)
	assert.Equal(t, schema.FailureConfiguration, report.Failure)
}

func TestExecuteThresholds(t *testing.T) {
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: filepath.Join(t.TempDir(), "thresholds.csv")}

	require.NoError(t, ExecuteThresholds(context.Background(), cfg))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "largest_contentful_paint,LCP,ms,2500,4000")
}
