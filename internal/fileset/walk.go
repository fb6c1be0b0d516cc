package fileset

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FromWalk builds an index by walking the directory tree at root. Fallback
// provider for trees that are not git repositories (doc exports, CI
// artifacts). Hidden directories and files are skipped, matching what a
// published checkout exposes.
func FromWalk(root string) (*Index, error) {
	idx := New()
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return rerr
		}
		idx.Add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}
