package gitutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Run executes git within dir and returns trimmed stdout.
func Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %v\n%s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// TopLevel returns the absolute path of the repository containing dir.
func TopLevel(dir string) (string, error) {
	out, err := Run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return filepath.Clean(out), nil
}

// CommonDir returns the repository's shared .git directory, which is the
// same for every worktree attached to the repository.
func CommonDir(dir string) (string, error) {
	out, err := Run(dir, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return filepath.Clean(out), nil
}

// CurrentBranch reports the checked-out branch name for a worktree.
func CurrentBranch(dir string) (string, error) {
	return Run(dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// Head returns the commit hash at HEAD.
func Head(dir string) (string, error) {
	return Run(dir, "rev-parse", "HEAD")
}

// Dirty reports whether the worktree has uncommitted/staged changes.
func Dirty(dir string) (bool, error) {
	out, err := Run(dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// BranchExists reports whether a local branch exists.
func BranchExists(dir, branch string) bool {
	cmd := exec.Command("git", "-C", dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return cmd.Run() == nil
}

// CreateBranch creates branch at the current HEAD without checking it out.
func CreateBranch(dir, branch string) error {
	_, err := Run(dir, "branch", branch)
	return err
}

// HeadTimestamp returns the timestamp of the HEAD commit.
func HeadTimestamp(dir string) (time.Time, error) {
	out, err := Run(dir, "log", "-1", "--format=%cI", "HEAD")
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, out)
}

// AheadBehind counts commits on HEAD relative to ref: ahead is the number of
// commits HEAD has that ref lacks, behind the reverse.
func AheadBehind(dir, ref string) (ahead, behind int, err error) {
	out, err := Run(dir, "rev-list", "--left-right", "--count", ref+"...HEAD")
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %s", out)
	}
	behind, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	ahead, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

// WorktreeAdd attaches a new worktree at path, checking out branch there.
func WorktreeAdd(dir, path, branch string) error {
	if _, err := Run(dir, "worktree", "add", path, branch); err != nil {
		return fmt.Errorf("git worktree add failed: %w", err)
	}
	return nil
}

// WorktreeRemove detaches the worktree at path. With force, uncommitted
// changes inside it are discarded.
func WorktreeRemove(dir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	_, err := Run(dir, args...)
	return err
}

// WorktreePrune drops stale worktree bookkeeping after manual removals.
func WorktreePrune(dir string) error {
	_, err := Run(dir, "worktree", "prune")
	return err
}

// Worktree is one entry from git worktree list.
type Worktree struct {
	Path   string
	Head   string
	Branch string
	Bare   bool
}

// WorktreeList returns every worktree registered with the repository.
func WorktreeList(dir string) ([]Worktree, error) {
	out, err := Run(dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktreeList(out), nil
}

// parseWorktreeList parses the --porcelain stanza format: one block per
// worktree, blocks separated by blank lines.
func parseWorktreeList(out string) []Worktree {
	var result []Worktree
	var cur *Worktree
	flush := func() {
		if cur != nil {
			result = append(result, *cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			cur = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case cur == nil:
			continue
		case strings.HasPrefix(line, "HEAD "):
			cur.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			cur.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			cur.Bare = true
		}
	}
	flush()
	return result
}

// Rebase replays the worktree's branch onto ref. A conflicting rebase is
// left in progress for manual resolution (continue or abort by hand).
func Rebase(dir, ref string) error {
	_, err := Run(dir, "rebase", ref)
	return err
}

// RebaseInProgress reports whether a rebase is underway in the worktree.
func RebaseInProgress(dir string) (bool, error) {
	gitDir, err := Run(dir, "rev-parse", "--git-dir")
	if err != nil {
		return false, err
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}
	for _, rel := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, rel)); err == nil {
			return true, nil
		}
	}
	return false, nil
}
