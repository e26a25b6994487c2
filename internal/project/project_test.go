package project

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestDiscoverFromSubdirectory(t *testing.T) {
	repo := initTempRepo(t)
	sub := filepath.Join(repo, "src", "app")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	proj, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if proj.Root != repo {
		t.Fatalf("root: got %q, want %q", proj.Root, repo)
	}
	if proj.Parent != filepath.Dir(repo) {
		t.Fatalf("parent: got %q", proj.Parent)
	}
}

func TestDiscoverOutsideRepository(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Fatalf("got %v, want ErrNotRepository", err)
	}
}

func TestSlicePathAndBranchName(t *testing.T) {
	repo := initTempRepo(t)
	proj, err := Load(repo)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := proj.BranchName("ui"); got != "slice/ui" {
		t.Fatalf("branch: got %q", got)
	}
	want := filepath.Join(filepath.Dir(repo), "slice-ui")
	if got := proj.SlicePath("ui"); got != want {
		t.Fatalf("path: got %q, want %q", got, want)
	}
	if got := proj.ContractsBranch(); got != "slice/contracts" {
		t.Fatalf("contracts branch: got %q", got)
	}
}

func TestListSliceDirs(t *testing.T) {
	repo := initTempRepo(t)
	parent := filepath.Dir(repo)
	for _, name := range []string{"slice-ui", "slice-backend", "unrelated"} {
		if err := os.Mkdir(filepath.Join(parent, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}

	proj, err := Load(repo)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dirs, err := proj.ListSliceDirs()
	if err != nil {
		t.Fatalf("ListSliceDirs: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("got %d dirs: %v", len(dirs), dirs)
	}
	if dirs[0].Name != "backend" || dirs[1].Name != "ui" {
		t.Fatalf("unexpected names: %v", dirs)
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	repo := initTempRepo(t)
	proj, err := Load(repo)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fl, err := proj.Lock()
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}
	defer fl.Unlock()

	if _, err := proj.Lock(); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Lock: got %v, want ErrLocked", err)
	}
}

func initTempRepo(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "repo")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	gitCmd(t, dir, "init", "-b", "main", ".")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("test"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	gitCmd(t, dir, "add", "README.md")
	gitCmd(t, dir, "commit", "-m", "init")

	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()

	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.Command("git", fullArgs...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
}
