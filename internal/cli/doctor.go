package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/gitutil"
	"github.com/slicekit/slicer/internal/project"
	"github.com/slicekit/slicer/internal/slice"
)

func newDoctorCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose slicer prerequisites and slice health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	Project *project.Project
}

type doctorCheck struct {
	Name string
	Fn   func(*doctorContext) error
}

func runDoctor(cmd *cobra.Command, verbose bool) error {
	ctx := &doctorContext{}
	wd, _ := os.Getwd()
	checks := []doctorCheck{
		{Name: "git installed", Fn: requireOnPath("git")},
		{Name: "inside a repository", Fn: func(c *doctorContext) error {
			proj, err := project.Discover(wd)
			if err != nil {
				return err
			}
			c.Project = proj
			return nil
		}},
		{Name: "config valid", Fn: func(c *doctorContext) error {
			if c.Project == nil {
				return errors.New("project not discovered")
			}
			return c.Project.Config.Validate()
		}},
		{Name: "slices consistent", Fn: checkSliceConsistency},
		{Name: "no rebase in progress", Fn: checkNoRebaseInProgress},
	}

	var failures []string
	for _, check := range checks {
		err := check.Fn(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("✗ %s: %v", check.Name, err))
			continue
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", check.Name)
		}
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintln(cmd.ErrOrStderr(), failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "healthy!")
	return nil
}

func requireOnPath(binary string) func(*doctorContext) error {
	return func(*doctorContext) error {
		if _, err := exec.LookPath(binary); err != nil {
			return fmt.Errorf("%s not found on PATH", binary)
		}
		return nil
	}
}

// checkSliceConsistency flags remnants of partial runs: a slice branch with
// no worktree directory, a worktree missing its note file, or a worktree
// still registered with git after its directory was deleted by hand. Every
// inconsistent slice is reported in one run.
func checkSliceConsistency(ctx *doctorContext) error {
	if ctx.Project == nil {
		return errors.New("project not discovered")
	}
	proj := ctx.Project
	var problems []string
	for _, name := range proj.Config.Slices {
		dir := proj.SlicePath(name)
		dirExists := false
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirExists = true
		}
		branchExists := gitutil.BranchExists(proj.Root, proj.BranchName(name))
		switch {
		case branchExists && !dirExists:
			problems = append(problems, fmt.Sprintf("%s: branch exists but worktree is missing (rerun create-all)", name))
		case dirExists:
			if _, err := os.Stat(filepath.Join(dir, slice.NoteFileName)); err != nil {
				problems = append(problems, fmt.Sprintf("%s: worktree missing %s", name, slice.NoteFileName))
			}
		}
	}

	worktrees, err := gitutil.WorktreeList(proj.Root)
	if err != nil {
		return err
	}
	for _, wt := range worktrees {
		base := filepath.Base(wt.Path)
		if !strings.HasPrefix(base, proj.Config.DirPrefix) {
			continue
		}
		if _, err := os.Stat(wt.Path); os.IsNotExist(err) {
			name := strings.TrimPrefix(base, proj.Config.DirPrefix)
			problems = append(problems, fmt.Sprintf("%s: worktree registered at %s but the directory is gone (run `git worktree prune`)", name, wt.Path))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func checkNoRebaseInProgress(ctx *doctorContext) error {
	if ctx.Project == nil {
		return errors.New("project not discovered")
	}
	dirs, err := ctx.Project.ListSliceDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		inProgress, err := gitutil.RebaseInProgress(dir.Path)
		if err != nil {
			continue
		}
		if inProgress {
			return fmt.Errorf("%s has a rebase in progress; resolve or abort it in %s", dir.Name, dir.Path)
		}
	}
	return nil
}
