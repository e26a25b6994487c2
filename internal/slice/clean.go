package slice

import (
	"os"

	"github.com/slicekit/slicer/internal/gitutil"
	"github.com/slicekit/slicer/internal/project"
)

// Clean forcibly detaches every sibling directory matching the slice
// pattern, discarding uncommitted changes without confirmation. Directories
// git no longer recognizes as worktrees are deleted directly and the
// worktree bookkeeping is pruned. Running with nothing to remove is a no-op.
func Clean(proj *project.Project) ([]Result, error) {
	dirs, err := proj.ListSliceDirs()
	if err != nil {
		return nil, err
	}

	var results []Result
	pruneNeeded := false
	for _, dir := range dirs {
		if err := gitutil.WorktreeRemove(proj.Root, dir.Path, true); err != nil {
			if rmErr := os.RemoveAll(dir.Path); rmErr != nil {
				results = append(results, Result{Name: dir.Name, Outcome: OutcomeFailed, Err: rmErr})
				continue
			}
			pruneNeeded = true
		}
		results = append(results, Result{Name: dir.Name, Outcome: OutcomeRemoved, Detail: dir.Path})
	}
	if pruneNeeded {
		if err := gitutil.WorktreePrune(proj.Root); err != nil {
			return results, err
		}
	}
	return results, nil
}
