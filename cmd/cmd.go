// Package cmd defines the command-line interface for cruxaudit.
package cmd

import (
	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(thresholdsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("api-key", "", "CrUX API key, or an http(s) proxy URL (prefer CRUX_API_KEY)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for distribution shares (1 or 2)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Do not echo the run log to stderr")
	rootCmd.PersistentFlags().String("llm-api-key", "", "API key of an OpenAI-compatible endpoint (prefer OPENAI_API_KEY)")
	rootCmd.PersistentFlags().String("llm-base-url", contract.DefaultLLMBaseURL, "Base URL of the OpenAI-compatible endpoint")
	rootCmd.PersistentFlags().String("llm-model", contract.DefaultLLMModel, "Model used for trend notes, reports and comparisons")
	rootCmd.PersistentFlags().String("prompts-dir", "", "Directory with prompt template overrides")
	rootCmd.PersistentFlags().String("http-timeout", contract.DefaultHTTPTimeout.String(), "Timeout of each HTTP request")
	rootCmd.PersistentFlags().String("retry-backoff", contract.DefaultRetryBackoff.String(), "Wait before retrying a request that hit a network error")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of auditCmd to Viper
	auditCmd.Flags().StringP("targets", "t", "", "Comma-separated domains to audit (max 10)")
	auditCmd.Flags().String("cycle-pause", contract.DefaultCyclePause.String(), "Pause between domains")
	if err := viper.BindPFlags(auditCmd.Flags()); err != nil {
		contract.LogFatal("Error binding audit flags", err)
	}
}
