// Package scan extracts link occurrences and anchor targets from markdown
// text. It is deliberately line-based and permissive: documents in the wild
// carry templating residue, half-finished tables and embedded HTML, and the
// scanner's job is to find what a renderer would turn into links and
// anchors, not to judge the markdown.
package scan

import (
	"regexp"
	"strings"
	"unicode"
)

// Link is a single link occurrence: the raw destination text and the
// 1-based line it appears on.
type Link struct {
	Destination string
	Line        int
}

var (
	// Inline links and images. Labels cannot nest and destinations stop at
	// the first closing paren; anything fancier is ignored rather than
	// guessed at.
	linkPattern = regexp.MustCompile(`!?\[[^\]]*\]\(([^)]+)\)`)

	inlineCodePattern = regexp.MustCompile("`[^`]*`")
)

// Links returns every inline link and image destination in document order.
// Fenced code blocks are skipped wholesale and inline code spans are
// blanked before matching, so `[n](i)` in a shell snippet never surfaces.
// Destinations keep optional titles stripped and angle-bracket wrapping
// removed; no other normalization happens here.
func Links(text string) []Link {
	var links []Link
	inFence := false

	for i, line := range splitLines(text) {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		scanLine := inlineCodePattern.ReplaceAllString(line, "")
		for _, m := range linkPattern.FindAllStringSubmatch(scanLine, -1) {
			dest := strings.TrimSpace(m[1])
			if strings.HasPrefix(dest, "<") && strings.Contains(dest, ">") {
				dest = strings.TrimSpace(dest[1:strings.Index(dest, ">")])
			} else if fields := strings.Fields(dest); len(fields) > 0 {
				// Optional title: (url "title") keeps only the url.
				dest = fields[0]
			} else {
				continue
			}
			links = append(links, Link{Destination: dest, Line: i + 1})
		}
	}
	return links
}

// splitLines splits on newlines and drops carriage returns so CRLF
// documents scan identically to LF ones.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
