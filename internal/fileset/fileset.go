// Package fileset maintains the universe of tracked repository paths that
// link targets are resolved against. Existence is strictly membership in the
// index: a file sitting on disk but absent from the index does not count,
// which keeps validation aligned with what a checkout actually publishes.
package fileset

import (
	"bufio"
	"bytes"
	"io"
	"path"
	"strings"

	"git.home.luguber.info/inful/doclink/internal/util/sets"
)

// Index is an immutable-by-convention set of root-relative file paths plus
// every ancestor directory derived from them. Paths use forward slashes.
type Index struct {
	files sets.Set[string]
	dirs  sets.Set[string]
}

// New builds an index from the given root-relative paths. Paths are trimmed
// of surrounding whitespace and slashes; empty entries are dropped.
func New(paths ...string) *Index {
	idx := &Index{
		files: sets.New[string](),
		dirs:  sets.New[string](),
	}
	for _, p := range paths {
		idx.Add(p)
	}
	return idx
}

// Add records a tracked file and all of its parent directories.
func (idx *Index) Add(p string) {
	norm := strings.Trim(strings.TrimSpace(p), "/")
	if norm == "" {
		return
	}
	idx.files.Add(norm)
	for dir := path.Dir(norm); dir != "." && dir != "/"; dir = path.Dir(dir) {
		idx.dirs.Add(dir)
	}
}

// ContainsFile reports whether rel names a tracked file.
func (idx *Index) ContainsFile(rel string) bool {
	return idx.files.Has(strings.Trim(rel, "/"))
}

// ContainsDir reports whether rel names a directory containing at least one
// tracked file. Directories exist only by implication; empty directories are
// never tracked.
func (idx *Index) ContainsDir(rel string) bool {
	return idx.dirs.Has(strings.Trim(rel, "/"))
}

// Len returns the number of tracked files.
func (idx *Index) Len() int { return idx.files.Len() }

// Files returns all tracked file paths in lexical order.
func (idx *Index) Files() []string { return sets.Sorted(idx.files) }

// Dirs returns all implied directory paths in lexical order.
func (idx *Index) Dirs() []string { return sets.Sorted(idx.dirs) }

// DocFiles returns all tracked documentation files in lexical order,
// optionally restricted to the given path prefixes.
func (idx *Index) DocFiles(scopes ...string) []string {
	out := make([]string, 0, idx.files.Len())
	for _, f := range sets.Sorted(idx.files) {
		if !IsDocFile(f) {
			continue
		}
		if len(scopes) > 0 && !inScope(f, scopes) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func inScope(rel string, scopes []string) bool {
	for _, s := range scopes {
		s = strings.Trim(s, "/")
		if s == "" || rel == s || strings.HasPrefix(rel, s+"/") {
			return true
		}
	}
	return false
}

// WithoutPrefixes returns the paths not equal to and not under any of the
// given prefixes. Order is preserved.
func WithoutPrefixes(paths, prefixes []string) []string {
	if len(prefixes) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !inScope(p, prefixes) {
			out = append(out, p)
		}
	}
	return out
}

// IsDocFile reports whether the path names a markdown document.
func IsDocFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// FromReader builds an index from newline- or NUL-delimited paths, the two
// framings `git ls-files` emits.
func FromReader(r io.Reader) (*Index, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	sc.Split(scanPathList)
	idx := New()
	for sc.Scan() {
		idx.Add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// scanPathList splits on newline or NUL so both `ls-files` and `ls-files -z`
// output parse without the caller declaring which one it has.
func scanPathList(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\x00\n"); i >= 0 {
		return i + 1, dropCR(data[:i]), nil
	}
	if atEOF {
		return len(data), dropCR(data), nil
	}
	return 0, nil, nil
}

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[:len(data)-1]
	}
	return data
}
