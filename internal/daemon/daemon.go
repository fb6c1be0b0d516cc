// Package daemon runs continuous link validation: an initial full pass,
// watcher-triggered revalidation, and an optional periodic schedule, with
// optional HTTP status, metrics, history recording and event publication.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/doclink/internal/check"
	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/content"
	"git.home.luguber.info/inful/doclink/internal/events"
	"git.home.luguber.info/inful/doclink/internal/fileset"
	"git.home.luguber.info/inful/doclink/internal/history"
	"git.home.luguber.info/inful/doclink/internal/logfields"
	"git.home.luguber.info/inful/doclink/internal/metrics"
	"git.home.luguber.info/inful/doclink/internal/watch"
)

// Validation run triggers.
const (
	TriggerStartup  = "startup"
	TriggerChange   = "change"
	TriggerSchedule = "schedule"
)

// RunSummary describes the most recent validation pass.
type RunSummary struct {
	ID        string    `json:"id"`
	Trigger   string    `json:"trigger"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Files     int       `json:"files"`
	Links     int       `json:"links"`
	Problems  int       `json:"problems"`
}

// Daemon composes the watcher, scheduler, HTTP endpoint and result sinks.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	recorder  metrics.Recorder
	registry  *prom.Registry
	store     *history.Store
	publisher *events.Publisher

	// runs funnels every trigger through one channel so validation passes
	// never overlap. Capacity 1: a queued run already covers later triggers
	// because each pass re-enumerates the tree.
	runs      chan string
	startTime time.Time

	mu      sync.RWMutex
	lastRun *RunSummary
}

// New builds a daemon from configuration, opening the optional history store
// and event publisher when enabled.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
		runs:     make(chan string, 1),
	}

	if cfg.Watch.HTTPAddr != "" {
		d.registry = prom.NewRegistry()
		d.recorder = metrics.NewPrometheusRecorder(d.registry)
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		d.store = store
	}

	if cfg.Events.Enabled {
		pub, err := events.NewPublisher(&cfg.Events)
		if err != nil {
			d.closeSinks()
			return nil, err
		}
		d.publisher = pub
	}

	return d, nil
}

// Run validates once at startup, then revalidates on watcher batches and the
// optional schedule until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	defer d.closeSinks()
	d.startTime = time.Now()

	if d.cfg.Watch.HTTPAddr != "" {
		srv, err := newHTTPServer(d)
		if err != nil {
			return err
		}
		srv.start(d.logger)
		defer srv.stop(d.logger)
	}

	if interval := d.cfg.Watch.IntervalDuration(); interval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(func() { d.requestRun(TriggerSchedule) }),
			gocron.WithName("full-revalidation"),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule revalidation: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		d.logger.Info("periodic revalidation scheduled", slog.Duration("interval", interval))
	}

	watcher := watch.New(d.cfg.Root, d.cfg.Watch.DebounceDuration(), d.logger, func(paths []string) {
		d.logger.Info("documents changed", logfields.Files(len(paths)))
		d.requestRun(TriggerChange)
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return watcher.Run(ctx) })
	g.Go(func() error { return d.loop(ctx) })
	return g.Wait()
}

func (d *Daemon) loop(ctx context.Context) error {
	d.runValidation(ctx, TriggerStartup)
	for {
		select {
		case <-ctx.Done():
			return nil
		case trigger := <-d.runs:
			d.runValidation(ctx, trigger)
		}
	}
}

func (d *Daemon) requestRun(trigger string) {
	select {
	case d.runs <- trigger:
	default:
	}
}

// Status reports the daemon state for the HTTP endpoint.
func (d *Daemon) Status() *Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return &Status{
		State:   "running",
		Uptime:  time.Since(d.startTime).Round(time.Second).String(),
		Root:    d.cfg.Root,
		LastRun: d.lastRun,
	}
}

// LastRun returns the most recent run summary, or nil before the first pass.
func (d *Daemon) LastRun() *RunSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastRun
}

func (d *Daemon) runValidation(ctx context.Context, trigger string) {
	runID := uuid.NewString()
	started := time.Now()
	log := d.logger.With(logfields.RunID(runID))

	idx, err := d.buildIndex()
	if err != nil {
		log.Error("failed to enumerate tracked files", logfields.Error(err))
		d.recorder.IncRunOutcome(metrics.OutcomeError)
		return
	}

	files := fileset.WithoutPrefixes(idx.DocFiles(d.cfg.Scopes...), d.cfg.Excludes)
	checker := check.NewChecker(idx, content.NewFSReader(d.cfg.Root), d.cfg.CheckConfig())

	result, err := checker.RunParallel(ctx, files, d.cfg.Parallel)
	if err != nil {
		log.Error("validation run aborted", logfields.Error(err))
		d.recorder.IncRunOutcome(metrics.OutcomeError)
		return
	}
	duration := time.Since(started)

	d.observe(result, duration)
	d.recordHistory(ctx, runID, started, duration, result, log)
	d.publishProblems(runID, result, log)

	summary := &RunSummary{
		ID:        runID,
		Trigger:   trigger,
		StartedAt: started,
		Duration:  duration.Round(time.Millisecond).String(),
		Files:     result.FilesChecked,
		Links:     result.LinksChecked,
		Problems:  len(result.Problems),
	}
	d.mu.Lock()
	d.lastRun = summary
	d.mu.Unlock()

	log.Info("validation run finished",
		slog.String("trigger", trigger),
		logfields.Files(result.FilesChecked),
		logfields.Links(result.LinksChecked),
		logfields.Problems(len(result.Problems)),
		logfields.DurationMS(float64(duration.Milliseconds())))
}

func (d *Daemon) buildIndex() (*fileset.Index, error) {
	switch d.cfg.Source {
	case config.SourceWalk:
		return fileset.FromWalk(d.cfg.Root)
	default:
		return fileset.FromGit(d.cfg.Root)
	}
}

func (d *Daemon) observe(result *check.Result, duration time.Duration) {
	d.recorder.ObserveRunDuration(duration)
	d.recorder.AddFilesScanned(result.FilesChecked)
	d.recorder.AddLinksChecked(result.LinksChecked)
	outcome := metrics.OutcomeClean
	if result.HasProblems() {
		outcome = metrics.OutcomeProblems
	}
	d.recorder.IncRunOutcome(outcome)
	for _, p := range result.Problems {
		d.recorder.AddProblems(p.Kind.String(), 1)
	}
}

func (d *Daemon) recordHistory(ctx context.Context, runID string, started time.Time, duration time.Duration, result *check.Result, log *slog.Logger) {
	if d.store == nil {
		return
	}
	run := history.Run{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: started.Add(duration),
		Files:      result.FilesChecked,
		Links:      result.LinksChecked,
		Problems:   len(result.Problems),
	}
	if err := d.store.Record(ctx, run, result.Problems); err != nil {
		log.Error("failed to record run history", logfields.Error(err))
	}
}

func (d *Daemon) publishProblems(runID string, result *check.Result, log *slog.Logger) {
	if d.publisher == nil {
		return
	}
	for _, p := range result.Problems {
		if err := d.publisher.PublishProblem(events.FromProblem(runID, d.cfg.Root, p)); err != nil {
			log.Error("failed to publish problem event",
				logfields.File(p.SourceFile),
				logfields.Error(err))
			return
		}
	}
}

func (d *Daemon) closeSinks() {
	if d.store != nil {
		_ = d.store.Close()
		d.store = nil
	}
	if d.publisher != nil {
		_ = d.publisher.Close()
		d.publisher = nil
	}
}
