package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/doclink/internal/check"
	"git.home.luguber.info/inful/doclink/internal/config"
	"git.home.luguber.info/inful/doclink/internal/content"
	"git.home.luguber.info/inful/doclink/internal/frontmatter"
	"git.home.luguber.info/inful/doclink/internal/logfields"
	"git.home.luguber.info/inful/doclink/internal/markdown"
)

// LinksCmd implements the 'links' command: a per-document inventory of
// link destinations and their classes. Purely informational, so unlike
// 'check' it never exits non-zero because of what it finds.
type LinksCmd struct {
	Path   string `arg:"" optional:"" help:"Documentation root to inventory (overrides configuration)"`
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
}

// fileInventory is the link inventory of one document.
type fileInventory struct {
	File    string          `json:"file"`
	Title   string          `json:"title,omitempty"`
	Links   []inventoryLink `json:"links"`
	Classes map[string]int  `json:"classes"`
}

// inventoryLink is a single destination with its parse kind and class.
type inventoryLink struct {
	Destination string `json:"destination"`
	Kind        string `json:"kind"`
	Class       string `json:"class"`
}

// inventoryTotals aggregates the whole tree.
type inventoryTotals struct {
	Files   int            `json:"files"`
	Links   int            `json:"links"`
	Classes map[string]int `json:"classes"`
}

// Display order for class counts: the tool's own remit first.
var classOrder = []check.Class{
	check.ClassFile,
	check.ClassFileAnchor,
	check.ClassSameDoc,
	check.ClassExternal,
	check.ClassIgnored,
}

// Run executes the links command.
func (l *LinksCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if l.Path != "" {
		cfg.Root = l.Path
	}

	idx, err := buildIndex(cfg, cfg.Source)
	if err != nil {
		return err
	}
	files := docFiles(idx, cfg)

	reader := content.NewFSReader(cfg.Root)
	inventory := make([]fileInventory, 0, len(files))
	totals := inventoryTotals{Classes: map[string]int{}}
	for _, rel := range files {
		text, err := reader.ReadDocument(rel)
		if err != nil {
			g.Logger.Warn("skipping unreadable document", logfields.File(rel), logfields.Error(err))
			continue
		}
		inv := inventoryFor(rel, []byte(text))
		inventory = append(inventory, inv)
		totals.Files++
		totals.Links += len(inv.Links)
		for class, n := range inv.Classes {
			totals.Classes[class] += n
		}
	}

	if l.Format == "json" {
		out := struct {
			Root   string          `json:"root"`
			Files  []fileInventory `json:"files"`
			Totals inventoryTotals `json:"totals"`
		}{Root: cfg.Root, Files: inventory, Totals: totals}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Link inventory: %s\n", cfg.Root)
	for _, inv := range inventory {
		name := inv.File
		if inv.Title != "" {
			name = fmt.Sprintf("%s %q", inv.File, inv.Title)
		}
		line := fmt.Sprintf("%s: %d link%s", name, len(inv.Links), plural(len(inv.Links)))
		if summary := classSummary(inv.Classes); summary != "" {
			line += fmt.Sprintf(" (%s)", summary)
		}
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
	_, _ = fmt.Fprintf(os.Stdout, "\n%d file%s, %d link%s", totals.Files, plural(totals.Files), totals.Links, plural(totals.Links))
	if summary := classSummary(totals.Classes); summary != "" {
		_, _ = fmt.Fprintf(os.Stdout, " (%s)", summary)
	}
	_, _ = fmt.Fprintln(os.Stdout)
	return nil
}

// inventoryFor classifies every link in one document. Frontmatter is split
// off first: its fields feed the title, and its lines are not markdown.
// A document with an unterminated frontmatter block is scanned whole.
func inventoryFor(rel string, doc []byte) fileInventory {
	var title string
	fm, body, had, err := frontmatter.Split(doc)
	switch {
	case err != nil:
		body = doc
	case had:
		if fields, perr := frontmatter.ParseYAML(fm); perr == nil {
			title, _ = fields["title"].(string)
		}
	}

	inv := fileInventory{File: rel, Title: title, Links: []inventoryLink{}, Classes: map[string]int{}}
	for _, link := range markdown.ExtractLinks(body) {
		class := check.Classify(link.Destination).Class.String()
		inv.Links = append(inv.Links, inventoryLink{
			Destination: link.Destination,
			Kind:        string(link.Kind),
			Class:       class,
		})
		inv.Classes[class]++
	}
	return inv
}

// classSummary renders non-zero class counts in display order.
func classSummary(classes map[string]int) string {
	parts := make([]string, 0, len(classOrder))
	for _, class := range classOrder {
		if n := classes[class.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", class, n))
		}
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
