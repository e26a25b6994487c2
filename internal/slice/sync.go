package slice

import (
	"fmt"

	"github.com/slicekit/slicer/internal/gitutil"
	"github.com/slicekit/slicer/internal/project"
)

// Sync rebases every existing slice worktree onto the contracts branch,
// skipping the contracts slice itself. Conflicts are recorded per slice and
// the walk continues; a conflicted rebase stays in progress inside that
// worktree for the operator to continue or abort by hand.
func Sync(proj *project.Project) ([]Result, error) {
	dirs, err := proj.ListSliceDirs()
	if err != nil {
		return nil, err
	}

	contracts := proj.ContractsBranch()
	var results []Result
	for _, dir := range dirs {
		if dir.Name == proj.Config.Contracts {
			continue
		}
		if err := gitutil.Rebase(dir.Path, contracts); err != nil {
			results = append(results, Result{
				Name:    dir.Name,
				Outcome: OutcomeConflict,
				Detail:  fmt.Sprintf("rebase onto %s stopped; resolve inside %s", contracts, dir.Path),
				Err:     err,
			})
			continue
		}
		results = append(results, Result{
			Name:    dir.Name,
			Outcome: OutcomeSynced,
			Detail:  "rebased onto " + contracts,
		})
	}
	return results, nil
}
