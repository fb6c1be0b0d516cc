package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/history"
)

// HistoryCmd implements the 'history' command: query the validation runs
// the watch daemon recorded.
type HistoryCmd struct {
	Last   int    `help:"Number of most recent runs to show" default:"10"`
	RunID  string `name:"run" help:"Show the problems recorded for one run"`
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
}

// Run executes the history command.
func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	// Opening would create an empty database; a query command should not.
	if _, err := os.Stat(cfg.History.Path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no run history at %s", cfg.History.Path)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if h.RunID != "" {
		return h.showRun(ctx, store)
	}
	return h.listRuns(ctx, store)
}

func (h *HistoryCmd) listRuns(ctx context.Context, store *history.Store) error {
	runs, err := store.LastRuns(ctx, h.Last)
	if err != nil {
		return err
	}

	if h.Format == "json" {
		if runs == nil {
			runs = []history.Run{}
		}
		out := struct {
			Runs []history.Run `json:"runs"`
		}{Runs: runs}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, run := range runs {
		printRunLine(run)
	}
	return nil
}

func (h *HistoryCmd) showRun(ctx context.Context, store *history.Store) error {
	run, err := store.FindRun(ctx, h.RunID)
	if err != nil {
		return err
	}
	problems, err := store.Problems(ctx, h.RunID)
	if err != nil {
		return err
	}

	if h.Format == "json" {
		if problems == nil {
			problems = []history.Problem{}
		}
		out := struct {
			Run      history.Run       `json:"run"`
			Problems []history.Problem `json:"problems"`
		}{Run: *run, Problems: problems}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printRunLine(*run)
	for _, p := range problems {
		_, _ = fmt.Fprintf(os.Stdout, "\n✗ %s:%d\n  %s\n", p.SourceFile, p.SourceLine, p.Message)
		if p.Link != "" {
			_, _ = fmt.Fprintf(os.Stdout, "  Link: %s\n", p.Link)
		}
	}
	return nil
}

func printRunLine(run history.Run) {
	duration := run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)
	_, _ = fmt.Fprintf(os.Stdout, "%s  %s  files %d  links %d  problems %d  (%s)\n",
		run.ID, run.StartedAt.Format(time.RFC3339), run.Files, run.Links, run.Problems, duration)
}
