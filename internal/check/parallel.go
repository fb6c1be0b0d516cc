package check

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunParallel validates documents with up to workers concurrent checkers.
// Results are gathered per file and flattened in input order, so the
// output is identical to a sequential Run over the same files. workers < 1
// selects one worker per CPU.
func (c *Checker) RunParallel(ctx context.Context, files []string, workers int) (*Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	type fileResult struct {
		problems []Problem
		links    int
	}
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			problems, links := c.checkFile(rel)
			results[i] = fileResult{problems: problems, links: links}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{FilesChecked: len(files)}
	for _, fr := range results {
		res.LinksChecked += fr.links
		res.Problems = append(res.Problems, fr.problems...)
	}
	return res, nil
}
