package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/cruxaudit/internal/contract"
	"github.com/huangsam/cruxaudit/internal/prompts"
	"github.com/huangsam/cruxaudit/internal/runlog"
	"github.com/huangsam/cruxaudit/schema"
)

// ErrInvalidCredential wraps a credential the resolver could not turn into a source.
var ErrInvalidCredential = errors.New("invalid credential")

// Resolver turns a credential into a metrics source. It is called once per run.
type Resolver func(credential string) (contract.MetricsSource, error)

// WorkflowConfig holds the collaborators of a Workflow.
type WorkflowConfig struct {
	Resolve    Resolver
	Generator  contract.TextGenerator // nil disables narrative generation
	Prompts    *prompts.Loader        // nil means embedded templates only
	Log        *runlog.Logger         // nil means a silent log
	CyclePause time.Duration
}

// Workflow is the audit state machine. Run drives each domain through
// Fetching, Narrating and Synthesizing in submission order, one at a time.
// A Workflow is not safe for concurrent runs.
type Workflow struct {
	resolve     Resolver
	narrator    *Narrator
	synthesizer *Synthesizer
	log         *runlog.Logger
	pause       time.Duration

	state       schema.WorkflowState
	transitions []schema.WorkflowState
	queue       []string
	results     []schema.AnalysisResult
	reports     []schema.DomainReport
	memory      schema.SessionMemory
}

// NewWorkflow creates a Workflow in the Idle state.
func NewWorkflow(wc WorkflowConfig) *Workflow {
	loader := wc.Prompts
	if loader == nil {
		loader = prompts.NewLoader()
	}
	log := wc.Log
	if log == nil {
		log = runlog.New(nil, false)
	}
	return &Workflow{
		resolve:     wc.Resolve,
		narrator:    NewNarrator(wc.Generator, loader),
		synthesizer: NewSynthesizer(wc.Generator, loader),
		log:         log,
		pause:       wc.CyclePause,
		state:       schema.StateIdle,
	}
}

// State returns the active state.
func (w *Workflow) State() schema.WorkflowState {
	return w.state
}

// Memory returns the session memory of the last cycle.
func (w *Workflow) Memory() schema.SessionMemory {
	return w.memory
}

// Run audits targets with the metrics source selected by credential and returns
// everything the run produced. The returned report is terminal: its state is
// either Complete or Failed.
func (w *Workflow) Run(ctx context.Context, targets []string, credential string) *schema.RunReport {
	w.reset()
	report := &schema.RunReport{ID: uuid.NewString(), StartedAt: time.Now()}

	normalized := contract.NormalizeTargets(targets)
	kept, dropped := contract.TruncateTargets(normalized, schema.MaxBatchSize)
	if len(dropped) > 0 {
		w.log.Warn(runlog.SourceWorkflow, "Batch limited to %d domains; dropping %d: %s",
			schema.MaxBatchSize, len(dropped), strings.Join(dropped, ", "))
	}
	w.queue = append([]string(nil), kept...)
	report.Targets = kept
	report.Dropped = dropped

	if strings.TrimSpace(credential) == "" {
		return w.fail(report, ErrMissingCredential)
	}
	if len(w.queue) == 0 {
		return w.fail(report, ErrNoTargets)
	}
	src, err := w.resolve(credential)
	if err != nil {
		return w.fail(report, fmt.Errorf("%w: %w", ErrInvalidCredential, err))
	}

	w.log.Info(runlog.SourceWorkflow, "Auditing %d domain(s) via %s", len(w.queue), describeSource(src))
	for len(w.queue) > 0 {
		if err := w.runCycle(ctx, src, w.queue[0]); err != nil {
			return w.fail(report, err)
		}
		w.queue = w.queue[1:]
		if len(w.queue) > 0 {
			if err := w.waitBetweenCycles(ctx); err != nil {
				return w.fail(report, err)
			}
		}
	}

	if len(w.results) > 1 {
		w.log.Info(runlog.SourceComparison, "Comparing %d domains", len(w.results))
		comparison, narrative := w.synthesizer.Compare(ctx, w.results)
		if narrative.Degraded != nil {
			w.log.Warn(runlog.SourceComparison, "Comparison narrative replaced by placeholder: %v", narrative.Degraded)
		}
		report.Comparison = comparison
		w.log.Success(runlog.SourceComparison, "%s", comparison.Verdict)
	}

	w.transition(schema.StateComplete)
	w.log.Success(runlog.SourceWorkflow, "Audit complete: %d domain(s) in %s",
		len(w.results), time.Since(report.StartedAt).Round(time.Millisecond))
	return w.finish(report)
}

// runCycle takes one domain through Fetching, Narrating and Synthesizing and
// records its result. A panic in any stage is reported as an error.
func (w *Workflow) runCycle(ctx context.Context, src contract.MetricsSource, domain string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error while processing %s: %v", domain, r)
		}
	}()

	// Fetching
	w.transition(schema.StateFetching)
	w.log.Info(runlog.SourceFetcher, "Fetching CrUX snapshot and history for %s (phone, desktop)", domain)
	if err := ctx.Err(); err != nil {
		return err
	}
	outcome, err := FetchAnalysis(ctx, src, domain)
	if err != nil {
		return err
	}
	for _, ff := range schema.AllFormFactors {
		if herr := outcome.HistoryErrors[ff]; herr != nil {
			w.log.Warn(runlog.SourceFetcher, "History unavailable for %s (%s); trends use the current value only: %v", domain, ff, herr)
		}
	}
	result := outcome.Result
	w.memory = schema.SessionMemory{LastResult: &result}
	w.log.Success(runlog.SourceFetcher, "%s: %s", domain, summarize(result))

	// Narrating
	w.transition(schema.StateNarrating)
	if err := ctx.Err(); err != nil {
		return err
	}
	notes := w.narrator.Narrate(ctx, domain, w.memory.LastResult)
	if notes.Degraded != nil {
		w.log.Warn(runlog.SourceNarrator, "Trend analysis for %s replaced by placeholder: %v", domain, notes.Degraded)
	} else {
		w.log.Success(runlog.SourceNarrator, "Trend analysis ready for %s", domain)
	}
	w.memory.LastTrendNotes = notes.Text

	// Synthesizing
	w.transition(schema.StateSynthesizing)
	if err := ctx.Err(); err != nil {
		return err
	}
	final := w.synthesizer.Synthesize(ctx, domain, ProjectForSynthesis(result), w.memory.LastTrendNotes)
	if final.Degraded != nil {
		w.log.Warn(runlog.SourceSynthesizer, "Report for %s replaced by placeholder: %v", domain, final.Degraded)
	} else {
		w.log.Success(runlog.SourceSynthesizer, "Report ready for %s", domain)
	}
	w.memory.LastReport = final.Text
	if err := ctx.Err(); err != nil {
		return err
	}

	w.results = append(w.results, result)
	w.reports = append(w.reports, schema.DomainReport{
		Domain:     domain,
		TrendNotes: w.memory.LastTrendNotes,
		Report:     w.memory.LastReport,
	})
	return nil
}

// waitBetweenCycles pauses before the next domain.
func (w *Workflow) waitBetweenCycles(ctx context.Context) error {
	if w.pause <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(w.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reset clears the state of any previous run and returns to Idle.
func (w *Workflow) reset() {
	w.state = schema.StateIdle
	w.transitions = []schema.WorkflowState{schema.StateIdle}
	w.queue = nil
	w.results = nil
	w.reports = nil
	w.memory = schema.SessionMemory{}
	w.log.Reset()
}

func (w *Workflow) transition(next schema.WorkflowState) {
	w.state = next
	w.transitions = append(w.transitions, next)
}

// fail moves to Failed and abandons the queue. No partial batch is kept.
func (w *Workflow) fail(report *schema.RunReport, err error) *schema.RunReport {
	kind := ClassifyFailure(err)
	w.transition(schema.StateFailed)
	if kind == schema.FailureConfiguration {
		w.log.Error(runlog.SourceWorkflow, "Configuration error: %v", err)
	} else {
		w.log.Error(runlog.SourceWorkflow, "Run failed: %v", err)
		if len(w.queue) > 1 {
			w.log.Warn(runlog.SourceWorkflow, "Abandoned %d queued domain(s)", len(w.queue)-1)
		}
	}
	w.queue = nil
	w.results = nil
	w.reports = nil

	report.Failure = kind
	report.Error = err.Error()
	return w.finish(report)
}

// finish copies the run state into report.
func (w *Workflow) finish(report *schema.RunReport) *schema.RunReport {
	report.State = w.state
	report.Transitions = append([]schema.WorkflowState(nil), w.transitions...)
	report.Results = append([]schema.AnalysisResult{}, w.results...)
	report.Reports = append([]schema.DomainReport{}, w.reports...)
	report.Log = w.log.Entries()
	report.Warnings = w.log.Count(schema.SeverityWarning)
	report.FinishedAt = time.Now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt)
	return report
}

// ClassifyFailure tells configuration problems apart from failures during processing.
func ClassifyFailure(err error) schema.FailureKind {
	switch {
	case err == nil:
		return schema.FailureNone
	case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrNoTargets), errors.Is(err, ErrInvalidCredential):
		return schema.FailureConfiguration
	default:
		return schema.FailureProcessing
	}
}

// describeSource names the metrics source for the log.
func describeSource(src contract.MetricsSource) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return "metrics source"
}

// summarize renders the phone and desktop ratings on one line.
func summarize(r schema.AnalysisResult) string {
	parts := make([]string, 0, len(schema.AllFormFactors))
	for _, ff := range schema.AllFormFactors {
		fa := r.FormFactor(ff)
		metrics := make([]string, 0, len(schema.AllMetrics))
		for _, m := range schema.AllMetrics {
			a := fa.Metric(m)
			metrics = append(metrics, fmt.Sprintf("%s %s (%s)", m.ShortName(), schema.FormatMetricValue(m, a.Value), schema.FormatRating(a.Rating)))
		}
		part := fmt.Sprintf("%s %s", ff, strings.Join(metrics, ", "))
		if n := len(fa.Regressions); n > 0 {
			part += fmt.Sprintf(", %d regression(s)", n)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
