package check

import (
	"fmt"
	"path"
	"strings"
	"sync"

	"git.home.luguber.info/inful/doclink/internal/content"
	"git.home.luguber.info/inful/doclink/internal/fileset"
	"git.home.luguber.info/inful/doclink/internal/scan"
	"git.home.luguber.info/inful/doclink/internal/util/sets"
)

// Checker validates links in markdown documents against a tracked-path
// index. Anchor sets are computed once per target and cached for the
// lifetime of the Checker, so validating a corpus that cross-links heavily
// stays linear in corpus size.
type Checker struct {
	index  *fileset.Index
	reader content.Reader
	cfg    *Config

	mu      sync.RWMutex
	anchors map[string]sets.Set[string]
}

// NewChecker builds a Checker. A nil cfg selects the standard profile.
func NewChecker(index *fileset.Index, reader content.Reader, cfg *Config) *Checker {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Checker{
		index:   index,
		reader:  reader,
		cfg:     cfg,
		anchors: make(map[string]sets.Set[string]),
	}
}

// CheckFile validates every link in one document. Problems come back in
// the order the links appear. An unreadable document yields exactly one
// problem pinned to line 1.
func (c *Checker) CheckFile(rel string) []Problem {
	problems, _ := c.checkFile(rel)
	return problems
}

// CheckFiles validates documents in the given order. The combined problem
// list preserves file order and in-file link order, so repeated runs over
// an unchanged corpus are byte-identical.
func (c *Checker) CheckFiles(rels []string) []Problem {
	var problems []Problem
	for _, rel := range rels {
		problems = append(problems, c.CheckFile(rel)...)
	}
	return problems
}

// Run validates documents sequentially and aggregates counts for
// reporting.
func (c *Checker) Run(files []string) *Result {
	res := &Result{FilesChecked: len(files)}
	for _, rel := range files {
		problems, links := c.checkFile(rel)
		res.LinksChecked += links
		res.Problems = append(res.Problems, problems...)
	}
	return res
}

func (c *Checker) checkFile(rel string) ([]Problem, int) {
	text, err := c.reader.ReadDocument(rel)
	if err != nil {
		return []Problem{{
			SourceFile: rel,
			SourceLine: 1,
			Message:    fmt.Sprintf("Unable to read file: %v", err),
			Kind:       KindUnreadable,
		}}, 0
	}

	links := scan.Links(text)
	var problems []Problem
	for _, link := range links {
		problems = append(problems, c.checkLink(rel, link)...)
	}
	return problems, len(links)
}

func (c *Checker) checkLink(sourceRel string, link scan.Link) []Problem {
	d := Classify(link.Destination)
	if d.Class == ClassIgnored || d.Class == ClassExternal {
		return nil
	}
	if c.matchesIgnorePattern(d.Raw) {
		return nil
	}

	if d.Class == ClassSameDoc {
		return c.checkAnchor(sourceRel, link.Line, d.Raw, sourceRel, d.Fragment)
	}

	target, inside := resolveTarget(sourceRel, d.Path)
	if !inside {
		return []Problem{{
			SourceFile: sourceRel,
			SourceLine: link.Line,
			Link:       d.Raw,
			Message:    fmt.Sprintf("Link resolves outside repository: %s", d.Path),
			Kind:       KindOutsideRoot,
		}}
	}

	if !c.index.ContainsFile(target) && !c.index.ContainsDir(target) {
		return []Problem{{
			SourceFile: sourceRel,
			SourceLine: link.Line,
			Link:       d.Raw,
			Message:    fmt.Sprintf("Target not found in tracked paths: %s", d.Path),
			Kind:       KindMissingTarget,
		}}
	}

	// Directory links defer anchor checks to the directory's index
	// document when one is tracked.
	anchorTarget := target
	if c.index.ContainsDir(target) && !c.index.ContainsFile(target) {
		if idx := path.Join(target, c.cfg.indexName()); c.index.ContainsFile(idx) {
			anchorTarget = idx
		}
	}

	if d.Fragment != "" && fileset.IsDocFile(anchorTarget) {
		return c.checkAnchor(sourceRel, link.Line, d.Raw, anchorTarget, d.Fragment)
	}
	return nil
}

func (c *Checker) checkAnchor(sourceRel string, line int, link, targetRel, fragment string) []Problem {
	anchor := "#" + fragment
	if c.anchorsFor(targetRel).Has(anchor) {
		return nil
	}
	return []Problem{{
		SourceFile: sourceRel,
		SourceLine: line,
		Link:       link,
		Message:    fmt.Sprintf("Anchor %q not found in %s", anchor, targetRel),
		Kind:       KindMissingAnchor,
	}}
}

// anchorsFor returns the anchor set of a target document, computing and
// caching it on first use. Unreadable targets cache an empty set: every
// anchor into them reports missing rather than silently passing.
func (c *Checker) anchorsFor(rel string) sets.Set[string] {
	c.mu.RLock()
	cached, ok := c.anchors[rel]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	var anchors sets.Set[string]
	text, err := c.reader.ReadDocument(rel)
	if err != nil {
		anchors = sets.New[string]()
	} else {
		anchors = scan.AnchorsWithOptions(text, scan.Options{HTMLAnchors: c.cfg.HTMLAnchors})
	}

	c.mu.Lock()
	if prior, ok := c.anchors[rel]; ok {
		// A concurrent worker computed the same set first; keep one value
		// so every caller observes the same instance.
		anchors = prior
	} else {
		c.anchors[rel] = anchors
	}
	c.mu.Unlock()
	return anchors
}

func (c *Checker) matchesIgnorePattern(dest string) bool {
	for _, pat := range c.cfg.IgnorePatterns {
		if pat != "" && strings.Contains(dest, pat) {
			return true
		}
	}
	return false
}

// resolveTarget maps a destination path to a root-relative target path.
// Root-absolute destinations resolve against the repository root,
// everything else against the source document's directory. inside is false
// when the result would escape the root.
func resolveTarget(sourceRel, destPath string) (string, bool) {
	destPath = strings.TrimSpace(destPath)

	var joined string
	if strings.HasPrefix(destPath, "/") {
		joined = path.Clean(strings.TrimLeft(destPath, "/"))
	} else {
		joined = path.Join(path.Dir(sourceRel), destPath)
	}

	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", false
	}
	return joined, true
}
