package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/daemon"
	"git.home.luguber.info/inful/doclink/internal/logfields"
)

// WatchCmd implements the 'watch' command: continuous validation driven by
// filesystem events, with the optional HTTP endpoint, schedule, history
// store and event publisher all coming from configuration.
type WatchCmd struct {
	Path     string `arg:"" optional:"" help:"Documentation root to watch (overrides configuration)"`
	HTTPAddr string `name:"http-addr" help:"Expose /healthz, /status and /metrics on this address (overrides configuration)"`
	Interval string `help:"Periodic full revalidation interval, e.g. 15m (overrides configuration)"`
}

// Run executes the watch command. It blocks until SIGINT or SIGTERM.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if w.Path != "" {
		cfg.Root = w.Path
	}
	if w.HTTPAddr != "" {
		cfg.Watch.HTTPAddr = w.HTTPAddr
	}
	if w.Interval != "" {
		cfg.Watch.Interval = w.Interval
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d, err := daemon.New(cfg, g.Logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}

	g.Logger.Info("watch mode started", logfields.Root(cfg.Root))
	if err := d.Run(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}
	g.Logger.Info("watch mode stopped")
	return nil
}
