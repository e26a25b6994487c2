package slice

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slicekit/slicer/internal/gitutil"
	"github.com/slicekit/slicer/internal/project"
)

// CreateAll walks the configured slice list in order and ensures each slice
// has a branch, a sibling worktree, and a note file. A slice whose directory
// already exists is skipped, which makes re-running safe after a partial
// earlier run. A slice that fails is recorded and the walk continues.
func CreateAll(proj *project.Project) []Result {
	results := make([]Result, 0, len(proj.Config.Slices))
	for _, name := range proj.Config.Slices {
		results = append(results, createOne(proj, name))
	}
	return results
}

func createOne(proj *project.Project, name string) Result {
	dir := proj.SlicePath(name)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return Result{Name: name, Outcome: OutcomeSkipped, Detail: "directory already exists"}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{Name: name, Outcome: OutcomeFailed, Err: err}
	}

	branch := proj.BranchName(name)
	if !gitutil.BranchExists(proj.Root, branch) {
		if err := gitutil.CreateBranch(proj.Root, branch); err != nil {
			return Result{Name: name, Outcome: OutcomeFailed, Err: fmt.Errorf("create branch %s: %w", branch, err)}
		}
	}

	if err := gitutil.WorktreeAdd(proj.Root, dir, branch); err != nil {
		return Result{Name: name, Outcome: OutcomeFailed, Err: err}
	}

	notePath := filepath.Join(dir, NoteFileName)
	if err := os.WriteFile(notePath, []byte(NoteContent(name)), 0o644); err != nil {
		return Result{Name: name, Outcome: OutcomeFailed, Err: fmt.Errorf("write %s: %w", NoteFileName, err)}
	}

	return Result{Name: name, Outcome: OutcomeCreated, Detail: fmt.Sprintf("%s at %s", branch, dir)}
}
