package contract

import (
	"testing"
	"time"

	"github.com/huangsam/cruxaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:    "text",
		Precision: DefaultPrecision,
		Color:     "yes",
		APIKey:    "key",
		Targets:   "a.com,b.com",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "missing credential is allowed", mutate: func(in *ConfigRawInput) { in.APIKey = "" }},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) {
			in.Output = "parquet"
			in.OutputFile = "scores.parquet"
		}},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: true},
		{name: "invalid pause", mutate: func(in *ConfigRawInput) { in.CyclePause = "soon" }, expectError: true},
		{name: "negative backoff", mutate: func(in *ConfigRawInput) { in.RetryBackoff = "-1s" }, expectError: true},
		{name: "zero timeout", mutate: func(in *ConfigRawInput) { in.HTTPTimeout = "0s" }, expectError: true},
		{name: "invalid llm base url", mutate: func(in *ConfigRawInput) { in.LLMBaseURL = "ftp://models" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, []string{"a.com", "b.com"}, cfg.Targets)
	assert.Equal(t, "key", cfg.Credential)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultCyclePause, cfg.CyclePause)
	assert.Equal(t, DefaultRetryBackoff, cfg.RetryBackoff)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	assert.Equal(t, DefaultLLMModel, cfg.LLMModel)
	assert.False(t, cfg.HasGenerator())
}

func TestProcessAndValidate_Overrides(t *testing.T) {
	input := validInput()
	input.Output = "JSON"
	input.CyclePause = "0s"
	input.RetryBackoff = "250ms"
	input.LLMAPIKey = " sk-test "
	input.LLMBaseURL = "http://localhost:11434/v1/"
	input.LLMModel = "llama3"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, time.Duration(0), cfg.CyclePause)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBackoff)
	assert.Equal(t, "sk-test", cfg.LLMAPIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLMBaseURL)
	assert.Equal(t, "llama3", cfg.LLMModel)
	assert.True(t, cfg.HasGenerator())
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Targets: []string{"a.com"}, Credential: "key"}

	clone := cfg.Clone()
	clone.Targets[0] = "b.com"

	assert.Equal(t, "a.com", cfg.Targets[0])
	assert.Equal(t, "key", clone.Credential)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}

	ProcessProfilingConfig(profile, " audit ")
	assert.True(t, profile.Enabled)
	assert.Equal(t, "audit", profile.Prefix)

	ProcessProfilingConfig(profile, "")
	assert.False(t, profile.Enabled)
}
