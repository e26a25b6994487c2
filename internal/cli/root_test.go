package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnknownSubcommandReturnsError(t *testing.T) {
	repo := initTempRepo(t)
	chdir(t, repo)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"frobnicate"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown sub-command")
	}

	// Nothing may have been created beside the repository.
	entries, err := os.ReadDir(filepath.Dir(repo))
	if err != nil {
		t.Fatalf("read parent: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "slice-") {
			t.Fatalf("unknown sub-command created %s", entry.Name())
		}
	}
}

func TestRootWithoutArgsRunsStatus(t *testing.T) {
	repo := initTempRepo(t)
	chdir(t, repo)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs([]string{})
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, name := range []string{"contracts", "frontend", "ui", "backend", "data"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("status missing slice %s:\n%s", name, out.String())
		}
	}
	if !strings.Contains(out.String(), "not created") {
		t.Fatalf("expected not-created hints:\n%s", out.String())
	}
}
