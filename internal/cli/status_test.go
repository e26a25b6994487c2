package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatusWarnsOnBrokenSliceDir(t *testing.T) {
	repo := initTempRepo(t)
	chdir(t, repo)

	// A slice-pattern directory with an unborn HEAD: every git query against
	// it fails, which must surface as a stderr warning, not a silent row.
	broken := filepath.Join(filepath.Dir(repo), "slice-empty")
	if err := os.Mkdir(broken, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	gitCmd(t, broken, "init", ".")

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs([]string{"status"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(errOut.String(), "warning: empty") {
		t.Fatalf("expected stderr warning for broken slice dir, got:\n%s", errOut.String())
	}
	// The healthy slices still render their not-created hints on stdout.
	if !strings.Contains(out.String(), "not created") {
		t.Fatalf("status output:\n%s", out.String())
	}
}
