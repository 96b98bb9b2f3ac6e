package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderLoadEmbedded(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name        string
		path        string
		id          string
		temperature float64
	}{
		{"narrator", NarratorTemplate, "narrator", 0.2},
		{"synthesizer", SynthesizerTemplate, "synthesizer", 0.7},
		{"comparison", ComparisonTemplate, "comparison", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, meta, err := loader.LoadTemplate(tt.path)
			require.NoError(t, err)
			require.NotNil(t, tmpl)
			require.NotNil(t, meta)
			assert.Equal(t, tt.id, meta.ID)
			require.NotNil(t, meta.Temperature)
			assert.InDelta(t, tt.temperature, *meta.Temperature, 1e-9)
		})
	}
}

func TestBuildNarratorPrompt(t *testing.T) {
	p, err := NewLoader().BuildNarratorPrompt(NarratorData{
		Domain:           "https://example.com",
		AnalysisJSON:     `{"domain":"https://example.com"}`,
		JumpThresholdPct: 10,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.2, p.Temperature, 1e-9)
	assert.Contains(t, p.Text, "https://example.com")
	assert.Contains(t, p.Text, `{"domain":"https://example.com"}`)
	assert.Contains(t, p.Text, "larger than 10%")
	assert.NotContains(t, p.Text, "temperature:")
}

func TestBuildSynthesizerPrompt(t *testing.T) {
	p, err := NewLoader().BuildSynthesizerPrompt(SynthesizerData{
		Domain:     "https://example.com",
		InputJSON:  `{"phone":{}}`,
		TrendNotes: "LCP is flat.",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.7, p.Temperature, 1e-9)
	assert.Contains(t, p.Text, "LCP is flat.")
	assert.Contains(t, p.Text, "## Recommendations")
}

func TestBuildComparisonPrompt(t *testing.T) {
	p, err := NewLoader().BuildComparisonPrompt(ComparisonData{
		Count:       2,
		Scoreboard:  "| 1 | a.com |",
		ResultsJSON: "[]",
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, p.Temperature, 1e-9)
	assert.Contains(t, p.Text, "comparing the Core Web Vitals of 2 websites")
	assert.Contains(t, p.Text, "| 1 | a.com |")
}

func TestLoaderOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "---\nid: narrator\ntemperature: 0\n---\nCustom narration for {{.Domain}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "narrator.md"), []byte(custom), 0o644))

	loader := NewLoader(dir)
	p, err := loader.BuildNarratorPrompt(NarratorData{Domain: "https://example.com"})
	require.NoError(t, err)

	assert.Equal(t, "Custom narration for https://example.com\n", p.Text)
	assert.Equal(t, 0.0, p.Temperature)

	// Templates without an override still come from the embedded FS.
	p, err = loader.BuildSynthesizerPrompt(SynthesizerData{Domain: "https://example.com"})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, p.Temperature, 1e-9)
}

func TestLoaderOverrideWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comparison.md"), []byte("Compare {{.Count}}"), 0o644))

	p, err := NewLoader(dir).BuildComparisonPrompt(ComparisonData{Count: 3})
	require.NoError(t, err)

	assert.Equal(t, "Compare 3", p.Text)
	assert.InDelta(t, ComparisonTemperature, p.Temperature, 1e-9)
}

func TestLoaderMissingKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "narrator.md"), []byte("{{.Missing}}"), 0o644))

	_, err := NewLoader(dir).Execute(NarratorTemplate, map[string]string{}, NarratorTemperature)
	assert.Error(t, err)
}

func TestParseFrontmatter(t *testing.T) {
	meta, body, err := parseFrontmatter([]byte("no frontmatter"))
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, "no frontmatter", body)

	_, _, err = parseFrontmatter([]byte("---\nid: [unclosed\n---\nbody"))
	assert.Error(t, err)
}

func TestLoaderClearCache(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "comparison.md")
	require.NoError(t, os.WriteFile(file, []byte("first"), 0o644))

	loader := NewLoader(dir)
	p, err := loader.BuildComparisonPrompt(ComparisonData{})
	require.NoError(t, err)
	assert.Equal(t, "first", p.Text)

	require.NoError(t, os.WriteFile(file, []byte("second"), 0o644))
	loader.ClearCache()
	p, err = loader.BuildComparisonPrompt(ComparisonData{})
	require.NoError(t, err)
	assert.Equal(t, "second", p.Text)
}
