package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/cruxaudit/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultCyclePause   = 1500 * time.Millisecond
	DefaultRetryBackoff = time.Second
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultLLMBaseURL   = "https://api.openai.com/v1"
	DefaultLLMModel     = "gpt-4o-mini"
)

// Config holds the runtime configuration for an audit.
// This struct is the "final, validated" config.
type Config struct {
	Targets    []string
	Credential string // API key or proxy URL; please use env var as this is plaintext

	LLMAPIKey  string // Please use env var as this is plaintext
	LLMBaseURL string
	LLMModel   string
	PromptsDir string

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool // Enable colored labels in table output
	Quiet      bool // Suppress the live run log on stderr
	Width      int  // Terminal width override (0 = auto-detect)

	CyclePause   time.Duration
	RetryBackoff time.Duration
	HTTPTimeout  time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile   string `mapstructure:"output-file"`
	Output       string `mapstructure:"output"`
	Precision    int    `mapstructure:"precision"`
	Color        string `mapstructure:"color"`
	Quiet        bool   `mapstructure:"quiet"`
	Width        int    `mapstructure:"width"`
	APIKey       string `mapstructure:"api-key"`
	LLMAPIKey    string `mapstructure:"llm-api-key"`
	LLMBaseURL   string `mapstructure:"llm-base-url"`
	LLMModel     string `mapstructure:"llm-model"`
	PromptsDir   string `mapstructure:"prompts-dir"`
	HTTPTimeout  string `mapstructure:"http-timeout"`
	RetryBackoff string `mapstructure:"retry-backoff"`

	// --- Fields from auditCmd.Flags() ---
	Targets    string `mapstructure:"targets"`
	CyclePause string `mapstructure:"cycle-pause"`
}

// HasGenerator reports whether narrative generation is configured.
func (c *Config) HasGenerator() bool {
	return c.LLMAPIKey != ""
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Targets != nil {
		clone.Targets = make([]string, len(c.Targets))
		copy(clone.Targets, c.Targets)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. A missing credential is not an error
// here; the workflow reports it as a configuration failure.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := processGenerator(cfg, input); err != nil {
		return err
	}
	cfg.Targets = SplitTargets(input.Targets)
	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Quiet = input.Quiet
	cfg.Credential = strings.TrimSpace(input.APIKey)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processDurations parses the pause, backoff and timeout settings.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	var err error
	if cfg.CyclePause, err = parseDuration("cycle-pause", input.CyclePause, DefaultCyclePause); err != nil {
		return err
	}
	if cfg.RetryBackoff, err = parseDuration("retry-backoff", input.RetryBackoff, DefaultRetryBackoff); err != nil {
		return err
	}
	if cfg.HTTPTimeout, err = parseDuration("http-timeout", input.HTTPTimeout, DefaultHTTPTimeout); err != nil {
		return err
	}
	if cfg.HTTPTimeout == 0 {
		return fmt.Errorf("http-timeout must be greater than 0")
	}
	return nil
}

// parseDuration parses a Go duration string, falling back to def when raw is empty.
func parseDuration(name, raw string, def time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s cannot be negative (received %s)", name, raw)
	}
	return d, nil
}

// processGenerator validates the language model settings.
func processGenerator(cfg *Config, input *ConfigRawInput) error {
	cfg.LLMAPIKey = strings.TrimSpace(input.LLMAPIKey)
	cfg.PromptsDir = input.PromptsDir

	cfg.LLMModel = strings.TrimSpace(input.LLMModel)
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultLLMModel
	}

	base := strings.TrimSpace(input.LLMBaseURL)
	if base == "" {
		base = DefaultLLMBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid --llm-base-url '%s'. must be an http(s) URL", input.LLMBaseURL)
	}
	cfg.LLMBaseURL = strings.TrimRight(base, "/")
	return nil
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	profilePrefix = strings.TrimSpace(profilePrefix)
	profile.Enabled = profilePrefix != ""
	profile.Prefix = profilePrefix
}
