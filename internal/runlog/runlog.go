// Package runlog keeps the ordered, timestamped log of an audit run and
// optionally echoes each entry to a terminal as it is recorded.
package runlog

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/cruxaudit/schema"
)

// Log sources used by the workflow.
const (
	SourceWorkflow    = "workflow"
	SourceFetcher     = "fetcher"
	SourceNarrator    = "narrator"
	SourceSynthesizer = "synthesizer"
	SourceComparison  = "comparison"
)

// Color variables for console output.
var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Logger records entries in the order they are written. It is not safe for
// concurrent use; the workflow driver is its only writer.
type Logger struct {
	entries   []schema.LogEntry
	out       io.Writer
	useColors bool
	now       func() time.Time
}

// New creates a Logger that echoes to out. A nil out keeps the log silent.
func New(out io.Writer, useColors bool) *Logger {
	return &Logger{out: out, useColors: useColors, now: time.Now}
}

// Reset drops all recorded entries.
func (l *Logger) Reset() {
	l.entries = nil
}

// Log records one entry.
func (l *Logger) Log(source, message string, severity schema.Severity) {
	entry := schema.LogEntry{Time: l.now(), Source: source, Message: message, Severity: severity}
	l.entries = append(l.entries, entry)
	if l.out != nil {
		_, _ = fmt.Fprintln(l.out, l.format(entry))
	}
}

// Info records an informational entry.
func (l *Logger) Info(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), schema.SeverityInfo)
}

// Success records a success entry.
func (l *Logger) Success(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), schema.SeveritySuccess)
}

// Warn records a warning entry.
func (l *Logger) Warn(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), schema.SeverityWarning)
}

// Error records an error entry.
func (l *Logger) Error(source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), schema.SeverityError)
}

// Entries returns a copy of the recorded entries.
func (l *Logger) Entries() []schema.LogEntry {
	out := make([]schema.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Count returns how many entries have the given severity.
func (l *Logger) Count(severity schema.Severity) int {
	n := 0
	for _, e := range l.entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}

func (l *Logger) format(e schema.LogEntry) string {
	level := fmt.Sprintf("%-7s", severityTag(e.Severity))
	if l.useColors {
		level = severityColor(e.Severity).Sprint(level)
	}
	return fmt.Sprintf("%s %s [%s] %s", e.Time.Format(time.TimeOnly), level, e.Source, e.Message)
}

func severityTag(s schema.Severity) string {
	switch s {
	case schema.SeveritySuccess:
		return "OK"
	case schema.SeverityWarning:
		return "WARN"
	case schema.SeverityError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func severityColor(s schema.Severity) *color.Color {
	switch s {
	case schema.SeveritySuccess:
		return successColor
	case schema.SeverityWarning:
		return warningColor
	case schema.SeverityError:
		return errorColor
	default:
		return infoColor
	}
}
