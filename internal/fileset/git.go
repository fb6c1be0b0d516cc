package fileset

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// FromGit enumerates the files of the HEAD tree of the repository at root.
// This is the canonical provider: it sees exactly what a clone of the current
// commit would contain, with no dependence on a porcelain binary.
func FromGit(root string) (*Index, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", root, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("load HEAD commit %s: %w", ref.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load HEAD tree: %w", err)
	}

	idx := New()
	err = tree.Files().ForEach(func(f *object.File) error {
		idx.Add(f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate HEAD tree: %w", err)
	}
	return idx, nil
}
