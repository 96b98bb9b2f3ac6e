// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the output formats so core only hands over finished data.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRunReport prints an audit run using the configured output format.
func (ow *OutWriter) WriteRunReport(report *schema.RunReport, cfg *contract.Config) error {
	return PrintRunReport(report, cfg)
}

// WriteThresholds prints the rating thresholds using the configured output format.
func (ow *OutWriter) WriteThresholds(cfg *contract.Config) error {
	return PrintThresholds(cfg)
}
