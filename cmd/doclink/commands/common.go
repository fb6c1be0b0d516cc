package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/fileset"
)

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the doclink command tree and its global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"doclink.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check   CheckCmd   `cmd:"" default:"withargs" help:"Validate internal links and anchors"`
	Anchors AnchorsCmd `cmd:"" help:"List the anchors a document exposes"`
	Links   LinksCmd   `cmd:"" help:"Inventory link destinations by class"`
	Watch   WatchCmd   `cmd:"" help:"Continuously validate on file changes"`
	History HistoryCmd `cmd:"" help:"Show recorded validation runs"`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// File enumeration sources accepted on the command line. Stdin is
// CLI-only: piping a path list makes no sense in a config file.
const sourceStdin = "stdin"

// buildIndex enumerates tracked paths for the configured root. The source
// decides the provider: the git HEAD tree, a filesystem walk, or a
// newline-separated path list on stdin.
func buildIndex(cfg *config.Config, source string) (*fileset.Index, error) {
	switch source {
	case config.SourceGit:
		return fileset.FromGit(cfg.Root)
	case config.SourceWalk:
		return fileset.FromWalk(cfg.Root)
	case sourceStdin:
		idx, err := fileset.FromReader(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read path list from stdin: %w", err)
		}
		return idx, nil
	default:
		return nil, fmt.Errorf("unknown source %q (expected git, walk, or stdin)", source)
	}
}

// docFiles applies scope and exclude filtering to the index.
func docFiles(idx *fileset.Index, cfg *config.Config) []string {
	return fileset.WithoutPrefixes(idx.DocFiles(cfg.Scopes...), cfg.Excludes)
}
