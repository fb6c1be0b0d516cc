package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter renders a validation result for output.
type Formatter interface {
	Format(w io.Writer, result *Result, root string) error
}

// TextFormatter renders results as human-readable text.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter.
func NewTextFormatter() *TextFormatter { return &TextFormatter{} }

// Format outputs results in human-readable text format. Problems print in
// validation order; nothing here may reorder them.
func (f *TextFormatter) Format(w io.Writer, result *Result, root string) error {
	if _, err := fmt.Fprintf(w, "Checking links in: %s\n", root); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, p := range result.Problems {
		if _, err := fmt.Fprintf(w, "✗ %s:%d\n", p.SourceFile, p.SourceLine); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %s\n", p.Message); err != nil {
			return err
		}
		if p.Link != "" {
			if _, err := fmt.Fprintf(w, "  Link: %s\n", p.Link); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %d file%s checked\n", result.FilesChecked, pluralize(result.FilesChecked)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %d link%s checked\n", result.LinksChecked, pluralize(result.LinksChecked)); err != nil {
		return err
	}
	n := len(result.Problems)
	if n > 0 {
		if _, err := fmt.Fprintf(w, "  %d problem%s found\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	msg := "✨ All links resolve!"
	if result.HasProblems() {
		msg = "❌ Found broken links."
	}
	if _, err := fmt.Fprintln(w, msg); err != nil {
		return err
	}
	return nil
}

// JSONFormatter renders results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Root         string        `json:"root"`
	FilesChecked int           `json:"files_checked"`
	LinksChecked int           `json:"links_checked"`
	ProblemCount int           `json:"problem_count"`
	Problems     []JSONProblem `json:"problems"`
}

// JSONProblem is a single problem in JSON output.
type JSONProblem struct {
	SourceFile string `json:"source_file"`
	SourceLine int    `json:"source_line"`
	Link       string `json:"link,omitempty"`
	Message    string `json:"message"`
	Kind       string `json:"kind"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, root string) error {
	output := JSONOutput{
		Root:         root,
		FilesChecked: result.FilesChecked,
		LinksChecked: result.LinksChecked,
		ProblemCount: len(result.Problems),
		Problems:     make([]JSONProblem, 0, len(result.Problems)),
	}
	for _, p := range result.Problems {
		output.Problems = append(output.Problems, JSONProblem{
			SourceFile: p.SourceFile,
			SourceLine: p.SourceLine,
			Link:       p.Link,
			Message:    p.Message,
			Kind:       p.Kind.String(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter for the format string.
func NewFormatter(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
