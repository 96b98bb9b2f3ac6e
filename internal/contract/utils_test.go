package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/cruxaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    schema.Rating
		expected string
	}{
		{name: "good", input: schema.Good, expected: GoodValue},
		{name: "needs improvement", input: schema.NeedsImprovement, expected: NeedsImprovementValue},
		{name: "poor", input: schema.Poor, expected: PoorValue},
		{name: "unknown rating falls back to poor", input: "", expected: PoorValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	for _, r := range []schema.Rating{schema.Good, schema.NeedsImprovement, schema.Poor} {
		t.Run(string(r), func(t *testing.T) {
			// Should contain the plain label
			assert.Contains(t, GetColorLabel(r), GetPlainLabel(r))
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path is stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.FileExists(t, path)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "missing", "report.json"))
		assert.Error(t, err)
	})
}

func TestSplitTargets(t *testing.T) {
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, SplitTargets(" a.com, b.com ,,c.com, "))
	assert.Empty(t, SplitTargets(""))
	assert.Empty(t, SplitTargets(" , ,"))
}

func TestNormalizeTarget(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"example.com", "https://example.com"},
		{"  example.com  ", "https://example.com"},
		{"https://example.com/", "https://example.com"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTarget(tt.input))
		})
	}
}

func TestNormalizeTargets(t *testing.T) {
	got := NormalizeTargets([]string{"b.com", "", " ", "https://a.com"})
	assert.Equal(t, []string{"https://b.com", "https://a.com"}, got)
}

func TestTruncateTargets(t *testing.T) {
	targets := []string{"1", "2", "3", "4"}

	kept, dropped := TruncateTargets(targets, 10)
	assert.Equal(t, targets, kept)
	assert.Nil(t, dropped)

	kept, dropped = TruncateTargets(targets, 3)
	assert.Equal(t, []string{"1", "2", "3"}, kept)
	assert.Equal(t, []string{"4"}, dropped)
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "abcd...", TruncateText("abcdefghij", 7))
	assert.Equal(t, "abcdefghij", TruncateText("abcdefghij", 3)) // too narrow to truncate
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
