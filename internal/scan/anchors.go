package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doclink/internal/util/sets"
)

// Options controls optional anchor sources.
type Options struct {
	// HTMLAnchors also collects id attributes (and name attributes on <a>)
	// from raw HTML elements outside code fences. Off by default: the core
	// anchor set is exactly what headings produce.
	HTMLAnchors bool
}

// Anchors returns the set of anchor targets a document exposes, each
// stored with its leading "#".
func Anchors(text string) sets.Set[string] {
	return AnchorsWithOptions(text, Options{})
}

// AnchorsWithOptions is Anchors with optional extra sources enabled.
func AnchorsWithOptions(text string, opts Options) sets.Set[string] {
	anchors := sets.New[string]()
	slugger := NewSlugger()
	lines := splitLines(text)

	add := func(heading string) {
		if slug := slugger.Slug(heading); slug != "" {
			anchors.Add("#" + slug)
		}
	}

	var htmlSrc strings.Builder
	inFence := false
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimLeftFunc(lines[i], unicode.IsSpace)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if opts.HTMLAnchors {
			htmlSrc.WriteString(lines[i])
			htmlSrc.WriteByte('\n')
		}

		// Headings count inside blockquotes too, so the marker prefix is
		// peeled off before looking at the line.
		normalized := strings.TrimSpace(stripBlockquote(lines[i]))

		if heading, ok := parseATXHeading(normalized); ok {
			add(heading)
			continue
		}

		if i+1 < len(lines) {
			underline := strings.TrimSpace(stripBlockquote(lines[i+1]))
			if isSetextUnderline(underline) {
				add(normalized)
				i++
				continue
			}
		}
	}

	if opts.HTMLAnchors {
		collectHTMLAnchors(htmlSrc.String(), anchors)
	}
	return anchors
}

// parseATXHeading matches `# Heading` through `###### Heading` and strips
// an optional closing hash sequence. Seven or more hashes, or hashes not
// followed by whitespace, are not headings.
func parseATXHeading(line string) (string, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(line[n:])
	if size == 0 || !unicode.IsSpace(r) {
		return "", false
	}
	heading := strings.TrimSpace(line[n+size:])
	return stripClosingHashes(heading), true
}

// stripClosingHashes removes a trailing ` ###` closing sequence. Hashes
// glued to the text are content and stay.
func stripClosingHashes(heading string) string {
	h := strings.TrimRight(heading, "#")
	if h == heading {
		return heading
	}
	trimmed := strings.TrimRightFunc(h, unicode.IsSpace)
	if trimmed == h {
		return heading
	}
	return trimmed
}

// isSetextUnderline reports whether the line is entirely `=` or entirely
// `-` characters, underlining the previous line as a heading.
func isSetextUnderline(line string) bool {
	return line != "" && (strings.Trim(line, "=") == "" || strings.Trim(line, "-") == "")
}

// stripBlockquote removes any number of leading `>` markers and the
// whitespace around them.
func stripBlockquote(line string) string {
	out := strings.TrimLeftFunc(line, unicode.IsSpace)
	for strings.HasPrefix(out, ">") {
		out = strings.TrimLeftFunc(out[1:], unicode.IsSpace)
	}
	return out
}

// collectHTMLAnchors walks the parsed HTML of the non-fenced document text
// and records element ids as anchor targets. The parser is tolerant by
// construction, so markdown interleaved with the HTML does not get in the
// way.
func collectHTMLAnchors(src string, anchors sets.Set[string]) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return
	}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Val == "" {
					continue
				}
				if attr.Key == "id" || (n.Data == "a" && attr.Key == "name") {
					anchors.Add("#" + attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}
