package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveRunDuration(150 * time.Millisecond)
	pr.IncRunOutcome(OutcomeProblems)
	pr.AddFilesScanned(12)
	pr.AddLinksChecked(87)
	pr.AddProblems("missing-target", 3)

	// Basic scrape to ensure metrics encode without panic.
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveRunDuration(time.Second)
	pr.IncRunOutcome(OutcomeClean)
	pr.AddFilesScanned(1)
	pr.AddLinksChecked(1)
	pr.AddProblems("missing-anchor", 1)
}
