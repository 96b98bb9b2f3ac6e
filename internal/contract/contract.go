// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/cruxaudit/schema"
)

// MetricsSource defines the two operations the audit needs from the CrUX data source.
// This allows the orchestration logic to be tested without reaching the network.
type MetricsSource interface {
	// GetSnapshot returns the current percentile report for one origin and form factor.
	GetSnapshot(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceSnapshot, error)

	// GetHistory returns the weekly percentile history for one origin and form factor.
	GetHistory(ctx context.Context, origin string, ff schema.FormFactor) (*schema.RawDeviceHistory, error)
}

// TextGenerator is the narrative-generation capability used by the narrator,
// the synthesizer and the batch comparison.
type TextGenerator interface {
	// Generate returns the model's completion for prompt at the given temperature.
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}
