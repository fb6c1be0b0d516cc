package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/scan"
	"git.home.luguber.info/inful/doclink/internal/util/sets"
)

// AnchorsCmd implements the 'anchors' command. It prints the anchor
// inventory of a single document: every fragment a link elsewhere in the
// tree could point at.
type AnchorsCmd struct {
	File   string `arg:"" help:"Markdown document to inspect"`
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
	HTML   bool   `help:"Also collect anchors from raw HTML id and name attributes"`
}

// Run executes the anchors command.
func (a *AnchorsCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(a.File)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	opts := scan.Options{HTMLAnchors: cfg.HTMLAnchors || a.HTML}
	anchors := sets.Sorted(scan.AnchorsWithOptions(string(data), opts))

	if a.Format == "json" {
		out := struct {
			File    string   `json:"file"`
			Anchors []string `json:"anchors"`
		}{File: a.File, Anchors: anchors}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, anchor := range anchors {
		fmt.Fprintln(os.Stdout, anchor)
	}
	return nil
}
