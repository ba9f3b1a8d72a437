package domain

import "time"

// BuildStatus is the terminal state of a target within one batch.
type BuildStatus string

const (
	// StatusSuccess indicates the tool ran and exited zero.
	StatusSuccess BuildStatus = "success"
	// StatusFailure indicates the tool exited nonzero or could not be spawned.
	StatusFailure BuildStatus = "failure"
	// StatusSkipped indicates an upstream dependency failed, so the target
	// was never submitted to the tool runner.
	StatusSkipped BuildStatus = "skipped"
	// StatusCached indicates the cached result was still valid and the tool
	// runner was not invoked.
	StatusCached BuildStatus = "cached"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is a structured, file-located message extracted from tool
// output. Line and Column are 1-based and zero when unknown.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity Severity
	Message  string
	Code     string
}

// BuildResult records the outcome of one target in one batch. Results are
// never mutated after creation; a later batch replaces them wholesale.
type BuildResult struct {
	TargetID    string
	Status      BuildStatus
	StartedAt   time.Time
	FinishedAt  time.Time
	DurationMs  int64
	Diagnostics []Diagnostic
}
