package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doclink/cmd/doclink/commands"
	"git.home.luguber.info/inful/doclink/internal/logfields"
	"git.home.luguber.info/inful/doclink/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("doclink"),
		kong.Description("Validate internal links and anchors across a markdown documentation tree."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("doclink %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}); err != nil {
		slog.Error("command failed", logfields.Error(err))
		os.Exit(2)
	}
}
