// Package metrics provides observability hooks for validation runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay zero-overhead unless the daemon wires in the
// Prometheus implementation.
package metrics

import "time"

// OutcomeLabel enumerates validation run outcomes for counters.
type OutcomeLabel string

const (
	OutcomeClean    OutcomeLabel = "clean"
	OutcomeProblems OutcomeLabel = "problems"
	OutcomeError    OutcomeLabel = "error"
)

// Recorder defines observability hooks for validation runs. Implementations
// must tolerate nil receivers so injection stays optional.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	AddFilesScanned(n int)
	AddLinksChecked(n int)
	AddProblems(kind string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)       {}
func (NoopRecorder) AddFilesScanned(int)              {}
func (NoopRecorder) AddLinksChecked(int)              {}
func (NoopRecorder) AddProblems(string, int)          {}
