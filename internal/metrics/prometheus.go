package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	runDuration  prom.Histogram
	runOutcomes  *prom.CounterVec
	filesScanned prom.Counter
	linksChecked prom.Counter
	problems     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the doclink metric series on
// reg. Passing nil creates a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doclink",
			Name:      "run_duration_seconds",
			Help:      "Duration of full validation runs",
			Buckets:   prom.DefBuckets,
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclink",
			Name:      "runs_total",
			Help:      "Validation runs by outcome",
		}, []string{"outcome"}),
		filesScanned: prom.NewCounter(prom.CounterOpts{
			Namespace: "doclink",
			Name:      "files_scanned_total",
			Help:      "Documents scanned for links",
		}),
		linksChecked: prom.NewCounter(prom.CounterOpts{
			Namespace: "doclink",
			Name:      "links_checked_total",
			Help:      "Links validated",
		}),
		problems: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doclink",
			Name:      "problems_total",
			Help:      "Validation problems by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.runDuration, pr.runOutcomes, pr.filesScanned, pr.linksChecked, pr.problems)
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddFilesScanned(n int) {
	if p == nil || p.filesScanned == nil {
		return
	}
	p.filesScanned.Add(float64(n))
}

func (p *PrometheusRecorder) AddLinksChecked(n int) {
	if p == nil || p.linksChecked == nil {
		return
	}
	p.linksChecked.Add(float64(n))
}

func (p *PrometheusRecorder) AddProblems(kind string, n int) {
	if p == nil || p.problems == nil {
		return
	}
	p.problems.WithLabelValues(kind).Add(float64(n))
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
