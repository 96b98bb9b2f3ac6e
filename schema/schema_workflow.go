package schema

import "time"

// LogEntry is one line of the ordered run log.
type LogEntry struct {
	Time     time.Time `json:"time"`
	Source   string    `json:"source"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
}

// SessionMemory is transient state shared between the stages of one cycle.
// Each cycle overwrites it; it is never persisted.
type SessionMemory struct {
	LastResult     *AnalysisResult `json:"last_result,omitempty"`
	LastTrendNotes string          `json:"last_trend_notes"`
	LastReport     string          `json:"last_report"`
}

// DomainReport is the narrative output recorded for one domain.
type DomainReport struct {
	Domain     string `json:"domain"`
	TrendNotes string `json:"trend_notes"`
	Report     string `json:"report"`
}

// RunReport is everything a run produced, including how it ended.
type RunReport struct {
	ID          string            `json:"id"`
	State       WorkflowState     `json:"state"`
	Failure     FailureKind       `json:"failure,omitempty"`
	Error       string            `json:"error,omitempty"`
	Targets     []string          `json:"targets"`
	Dropped     []string          `json:"dropped,omitempty"`
	Transitions []WorkflowState   `json:"transitions"`
	Results     []AnalysisResult  `json:"results"`
	Reports     []DomainReport    `json:"reports"`
	Comparison  *ComparisonReport `json:"comparison,omitempty"`
	Log         []LogEntry        `json:"log"`
	Warnings    int               `json:"warnings"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Duration    time.Duration     `json:"duration"`
}

// Succeeded reports whether the run reached the Complete state.
func (r *RunReport) Succeeded() bool {
	return r != nil && r.State == StateComplete
}
