package cli

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateAllThenCleanRoundTrip(t *testing.T) {
	repo := initTempRepo(t)
	chdir(t, repo)

	out := runCommand(t, "create-all")
	for _, name := range []string{"contracts", "frontend", "ui", "backend", "data"} {
		if !strings.Contains(out, name) {
			t.Fatalf("create-all output missing %s:\n%s", name, out)
		}
		dir := filepath.Join(filepath.Dir(repo), "slice-"+name)
		if _, err := os.Stat(filepath.Join(dir, "SLICE.md")); err != nil {
			t.Fatalf("note file for %s: %v", name, err)
		}
	}

	// Re-running reports skips, not errors.
	out = runCommand(t, "create-all")
	if !strings.Contains(out, "skipped") {
		t.Fatalf("second create-all did not skip:\n%s", out)
	}

	out = runCommand(t, "clean")
	if !strings.Contains(out, "removed") {
		t.Fatalf("clean output:\n%s", out)
	}
	entries, err := os.ReadDir(filepath.Dir(repo))
	if err != nil {
		t.Fatalf("read parent: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "slice-") {
			t.Fatalf("clean left %s behind", entry.Name())
		}
	}

	out = runCommand(t, "clean")
	if !strings.Contains(out, "nothing to remove") {
		t.Fatalf("empty clean output:\n%s", out)
	}
}

func TestCleanDryRunRemovesNothing(t *testing.T) {
	repo := initTempRepo(t)
	chdir(t, repo)

	runCommand(t, "create-all")
	out := runCommand(t, "clean", "--dry-run")
	if !strings.Contains(out, "would remove") {
		t.Fatalf("dry-run output:\n%s", out)
	}
	for _, name := range []string{"contracts", "frontend", "ui", "backend", "data"} {
		if _, err := os.Stat(filepath.Join(filepath.Dir(repo), "slice-"+name)); err != nil {
			t.Fatalf("dry-run removed slice-%s: %v", name, err)
		}
	}
}

func TestSyncCommandReportsPerSlice(t *testing.T) {
	repo := initTempRepo(t)
	chdir(t, repo)

	runCommand(t, "create-all")
	out := runCommand(t, "sync")
	for _, name := range []string{"frontend", "ui", "backend", "data"} {
		if !strings.Contains(out, name) {
			t.Fatalf("sync output missing %s:\n%s", name, out)
		}
	}
	if strings.Contains(out, "contracts ") {
		t.Fatalf("sync must not list the contracts slice:\n%s", out)
	}
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("slicer %v: %v\n%s", args, err, out.String())
	}
	return out.String()
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
