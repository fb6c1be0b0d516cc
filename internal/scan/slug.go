package scan

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	slugImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	slugLinkPattern  = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	slugCodePattern  = regexp.MustCompile("`([^`]*)`")
	slugTagPattern   = regexp.MustCompile(`<[^>]+>`)
)

// Slug converts heading text to the anchor slug GitHub derives for it:
// inline formatting is reduced to its visible text, HTML entities are
// decoded, the result is lowercased, whitespace runs become single hyphens
// and everything that is not a letter, digit, underscore or hyphen is
// dropped. Headings that reduce to nothing yield "".
func Slug(heading string) string {
	text := strings.TrimSpace(heading)
	text = stripFormatting(text)
	text = html.UnescapeString(text)
	text = strings.ToLower(strings.TrimSpace(text))

	text = strings.Join(strings.FieldsFunc(text, unicode.IsSpace), "-")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		// Letter and digit checks are spelled out because the slug must
		// keep non-ASCII word characters; regexp's \w is ASCII-only.
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

func stripFormatting(text string) string {
	text = slugImagePattern.ReplaceAllString(text, "${1}")
	text = slugLinkPattern.ReplaceAllString(text, "${1}")
	text = slugCodePattern.ReplaceAllString(text, "${1}")
	for _, marker := range []string{"**", "__", "*", "_"} {
		text = strings.ReplaceAll(text, marker, "")
	}
	return slugTagPattern.ReplaceAllString(text, "")
}

// Slugger assigns anchor slugs within one document, disambiguating repeats
// the way GitHub renders them: the first occurrence takes the bare slug,
// later ones get -1, -2 and so on.
type Slugger struct {
	counts map[string]int
}

// NewSlugger returns a fresh slugger. State is per document; never share
// one across files.
func NewSlugger() *Slugger {
	return &Slugger{counts: make(map[string]int)}
}

// Slug returns the disambiguated slug for heading, or "" when the heading
// reduces to nothing sluggable. Empty results do not advance any counter.
func (s *Slugger) Slug(heading string) string {
	base := Slug(heading)
	if base == "" {
		return ""
	}
	n := s.counts[base]
	s.counts[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
