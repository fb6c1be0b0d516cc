// Package check validates relative links and anchors across a set of
// markdown documents. Targets are resolved against a tracked-path index
// rather than the filesystem, so results describe what a published
// checkout actually serves.
package check

// Kind classifies what went wrong with a link.
type Kind int

const (
	// KindUnreadable means the source document could not be read.
	KindUnreadable Kind = iota
	// KindOutsideRoot means the destination escapes the repository root.
	KindOutsideRoot
	// KindMissingTarget means the destination names no tracked file or directory.
	KindMissingTarget
	// KindMissingAnchor means the target exists but lacks the referenced anchor.
	KindMissingAnchor
)

// String returns the stable identifier used in JSON output, metrics labels
// and event payloads.
func (k Kind) String() string {
	switch k {
	case KindUnreadable:
		return "unreadable-file"
	case KindOutsideRoot:
		return "outside-root"
	case KindMissingTarget:
		return "missing-target"
	case KindMissingAnchor:
		return "missing-anchor"
	default:
		return "unknown"
	}
}

// Problem is a single broken link occurrence. SourceLine is 1-based; for
// unreadable files it is pinned to 1 and Link is empty.
type Problem struct {
	SourceFile string // root-relative path of the document holding the link
	SourceLine int    // line the link appears on
	Link       string // the link destination as written (normalized)
	Message    string // human-readable description
	Kind       Kind   // machine-readable classification
}

// Result aggregates one validation run.
type Result struct {
	Problems     []Problem
	FilesChecked int
	LinksChecked int
}

// HasProblems reports whether the run found anything broken.
func (r *Result) HasProblems() bool { return len(r.Problems) > 0 }

// CountByKind returns how many problems of the given kind were found.
func (r *Result) CountByKind(k Kind) int {
	n := 0
	for _, p := range r.Problems {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Config adjusts validation behavior. The zero value is the standard
// profile.
type Config struct {
	// HTMLAnchors accepts raw HTML id/name attributes as anchor targets in
	// addition to heading slugs.
	HTMLAnchors bool

	// IgnorePatterns skips any link whose normalized destination contains
	// one of these substrings, on top of the built-in placeholder set.
	IgnorePatterns []string

	// IndexName is the per-directory index document that directory links
	// fall back to for anchor checks. Defaults to README.md.
	IndexName string
}

func (c *Config) indexName() string {
	if c == nil || c.IndexName == "" {
		return "README.md"
	}
	return c.IndexName
}
