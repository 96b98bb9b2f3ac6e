package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/cruxaudit/schema"
)

// Rating label constants.
const (
	GoodValue             = "Good"              // Good value
	NeedsImprovementValue = "Needs Improvement" // Needs improvement value
	PoorValue             = "Poor"              // Poor value
)

// Color variables for console output.
var (
	GoodColor             = color.New(color.FgGreen)          // GoodColor represents a passing metric.
	NeedsImprovementColor = color.New(color.FgYellow)         // NeedsImprovementColor represents standard caution, not bold.
	PoorColor             = color.New(color.FgRed, color.Bold) // PoorColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a rating. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(r schema.Rating) string {
	switch r {
	case schema.Good:
		return GoodValue
	case schema.NeedsImprovement:
		return NeedsImprovementValue
	default:
		return PoorValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(r schema.Rating) string {
	text := GetPlainLabel(r)

	switch text {
	case GoodValue:
		return GoodColor.Sprint(text)
	case NeedsImprovementValue:
		return NeedsImprovementColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// SplitTargets splits a comma-separated domain list, trimming whitespace and dropping empties.
func SplitTargets(raw string) []string {
	targets := []string{}
	for p := range strings.SplitSeq(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			targets = append(targets, p)
		}
	}
	return targets
}

// NormalizeTarget turns a domain string into an origin: it trims whitespace,
// adds https:// when no scheme is given and strips trailing slashes.
// An empty input yields an empty string.
func NormalizeTarget(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}
	if !strings.Contains(t, "://") {
		t = "https://" + t
	}
	return strings.TrimRight(t, "/")
}

// NormalizeTargets normalizes every target and drops the empty ones.
// Order is preserved.
func NormalizeTargets(raw []string) []string {
	targets := make([]string, 0, len(raw))
	for _, r := range raw {
		if t := NormalizeTarget(r); t != "" {
			targets = append(targets, t)
		}
	}
	return targets
}

// TruncateTargets keeps the first limit targets and returns the rest separately.
func TruncateTargets(targets []string, limit int) (kept, dropped []string) {
	if len(targets) <= limit {
		return targets, nil
	}
	return targets[:limit], targets[limit:]
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
