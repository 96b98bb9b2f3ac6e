// Package core has core logic for metric extraction, trend analysis and the audit workflow.
package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/internal/cruxclient"
	"github.com/huangsam/cruxaudit/internal/genai"
	"github.com/huangsam/cruxaudit/internal/outwriter"
	"github.com/huangsam/cruxaudit/internal/prompts"
	"github.com/huangsam/cruxaudit/internal/runlog"
	"github.com/huangsam/cruxaudit/schema"
)

// ExecutorFunc defines the function signature for executing a command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// AuditFailedError is returned by ExecuteAudit when the run ends in the Failed state.
// The report has already been written when it is returned.
type AuditFailedError struct {
	Kind    schema.FailureKind
	Message string
}

func (e *AuditFailedError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// NewAuditWorkflow wires a Workflow from cfg. A nil log keeps the run silent.
func NewAuditWorkflow(cfg *contract.Config, log *runlog.Logger) *Workflow {
	return NewWorkflow(WorkflowConfig{
		Resolve: func(credential string) (contract.MetricsSource, error) {
			return cruxclient.Resolve(credential,
				cruxclient.WithTimeout(cfg.HTTPTimeout),
				cruxclient.WithRetryBackoff(cfg.RetryBackoff),
			)
		},
		Generator:  genai.NewFromConfig(cfg),
		Prompts:    prompts.DefaultLoader(cfg.PromptsDir),
		Log:        log,
		CyclePause: cfg.CyclePause,
	})
}

// RunAudit audits cfg.Targets and returns the terminal report. The run log is
// echoed to stderr unless cfg.Quiet is set.
func RunAudit(ctx context.Context, cfg *contract.Config) *schema.RunReport {
	var out io.Writer
	if !cfg.Quiet {
		out = os.Stderr
	}
	return NewAuditWorkflow(cfg, runlog.New(out, cfg.UseColors)).Run(ctx, cfg.Targets, cfg.Credential)
}

// ExecuteAudit runs the audit and prints the report in the configured format.
// It serves as the main entry point for the 'audit' command.
func ExecuteAudit(ctx context.Context, cfg *contract.Config) error {
	report := RunAudit(ctx, cfg)
	if err := outwriter.NewOutWriter().WriteRunReport(report, cfg); err != nil {
		return err
	}
	if !report.Succeeded() {
		return &AuditFailedError{Kind: report.Failure, Message: report.Error}
	}
	return nil
}

// ExecuteThresholds prints the rating thresholds. It needs no credential.
func ExecuteThresholds(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteThresholds(cfg)
}
