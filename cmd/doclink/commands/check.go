package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/doclink/internal/check"
	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/content"
	"git.home.luguber.info/inful/doclink/internal/logfields"
)

// CheckCmd implements the 'check' command.
//
// Exit codes: 0 when every link resolves, 1 when problems were found,
// 2 on operational failure (bad config, unreadable root, ...).
type CheckCmd struct {
	Path     string   `arg:"" optional:"" help:"Documentation root to validate (overrides configuration)"`
	Format   string   `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
	Quiet    bool     `short:"q" help:"Suppress output when no problems are found"`
	Scope    []string `help:"Restrict validation to subtree prefixes (overrides configuration)"`
	Exclude  []string `help:"Skip files under these prefixes (overrides configuration)"`
	Parallel *int     `short:"p" help:"Validation workers, 0 means one per CPU (overrides configuration)"`
	Source   string   `short:"s" help:"File enumeration source: git, walk, or stdin (overrides configuration)"`
}

// Run executes the check command.
func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	source := c.apply(cfg)

	idx, err := buildIndex(cfg, source)
	if err != nil {
		return err
	}
	files := docFiles(idx, cfg)

	checker := check.NewChecker(idx, content.NewFSReader(cfg.Root), cfg.CheckConfig())
	result, err := checker.RunParallel(context.Background(), files, cfg.Parallel)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	g.Logger.Debug("validation finished",
		logfields.Root(cfg.Root),
		logfields.Files(result.FilesChecked),
		logfields.Links(result.LinksChecked),
		logfields.Problems(len(result.Problems)))

	if !c.Quiet || result.HasProblems() {
		formatter := check.NewFormatter(c.Format)
		if err := formatter.Format(os.Stdout, result, cfg.Root); err != nil {
			return fmt.Errorf("format output: %w", err)
		}
	}

	if result.HasProblems() {
		os.Exit(1)
	}
	return nil
}

// apply folds command-line overrides into the loaded configuration and
// returns the effective enumeration source. Set flags win over the file;
// unset flags leave it alone.
func (c *CheckCmd) apply(cfg *config.Config) string {
	if c.Path != "" {
		cfg.Root = c.Path
	}
	if len(c.Scope) > 0 {
		cfg.Scopes = c.Scope
	}
	if len(c.Exclude) > 0 {
		cfg.Excludes = c.Exclude
	}
	if c.Parallel != nil {
		cfg.Parallel = *c.Parallel
	}
	if c.Source != "" {
		return c.Source
	}
	return cfg.Source
}
