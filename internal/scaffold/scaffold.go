// Package scaffold produces a runnable project skeleton: it delegates to an
// external generator command, overlays template files onto the result,
// substitutes the project name for a placeholder token, and creates the
// initial commit. Every step is fail-fast with no rollback of partial state.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/slicekit/slicer/internal/config"
	"github.com/slicekit/slicer/internal/gitutil"
)

// DefaultProjectName is used when setup is invoked without an argument.
const DefaultProjectName = "my-app"

// Options drives one setup run.
type Options struct {
	// Name is the project name, passed verbatim to the generator and used
	// as the target directory. Not validated here; the generator may reject it.
	Name string
	// TemplateRoot is the directory holding the template overlay
	// (normally the directory setup is invoked from).
	TemplateRoot string
	Setup        config.SetupBlock

	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the full setup flow and returns the created project path.
func Run(opts Options) (string, error) {
	if opts.Name == "" {
		opts.Name = DefaultProjectName
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	projectDir := filepath.Join(opts.TemplateRoot, opts.Name)

	if err := runShell(opts, opts.TemplateRoot, opts.Setup.Generator+" "+shellQuote(opts.Name)); err != nil {
		return "", fmt.Errorf("generator failed: %w", err)
	}
	if _, err := os.Stat(projectDir); err != nil {
		return "", fmt.Errorf("generator did not produce %s: %w", projectDir, err)
	}

	if opts.Setup.Backend != "" {
		if err := runShell(opts, projectDir, opts.Setup.Backend); err != nil {
			return "", fmt.Errorf("backend provisioning failed: %w", err)
		}
	}

	copied, err := copyOverlay(opts, projectDir)
	if err != nil {
		return "", err
	}

	if err := substitutePlaceholder(copied, opts.Setup.Placeholder, opts.Name); err != nil {
		return "", err
	}

	if err := initialCommit(projectDir); err != nil {
		return "", err
	}

	fmt.Fprintf(opts.Stdout, "Created %s\n", projectDir)
	return projectDir, nil
}

// runShell executes a command line via the user's shell, mirroring how the
// bootstrap hook runs: output streams through, failure is fatal.
func runShell(opts Options, dir, command string) error {
	sh := os.Getenv("SHELL")
	if sh == "" {
		sh = "/bin/sh"
	}
	cmd := exec.Command(sh, "-c", command)
	cmd.Dir = dir
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// copyOverlay copies each configured overlay entry from the template
// directory into the project. Entries missing from the template are skipped;
// the overlay list is a maximum, not a requirement. Returns the paths of
// every regular file copied.
func copyOverlay(opts Options, projectDir string) ([]string, error) {
	templateDir := opts.TemplateRoot
	if opts.Setup.TemplateDir != "" {
		templateDir = filepath.Join(opts.TemplateRoot, opts.Setup.TemplateDir)
	}
	var copied []string
	for _, entry := range opts.Setup.Overlay {
		src := filepath.Join(templateDir, entry)
		dst := filepath.Join(projectDir, entry)
		info, err := os.Stat(src)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			files, err := copyDir(src, dst)
			if err != nil {
				return nil, fmt.Errorf("copy %s: %w", entry, err)
			}
			copied = append(copied, files...)
			continue
		}
		if err := copyFile(src, dst, info.Mode()); err != nil {
			return nil, fmt.Errorf("copy %s: %w", entry, err)
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

func copyDir(src, dst string) ([]string, error) {
	var copied []string
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if err := copyFile(path, target, info.Mode()); err != nil {
			return err
		}
		copied = append(copied, target)
		return nil
	})
	return copied, err
}

func copyFile(src, dst string, mode os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode.Perm())
}

// substitutePlaceholder rewrites, in place, every copied file containing the
// placeholder token.
func substitutePlaceholder(files []string, placeholder, name string) error {
	if placeholder == "" {
		return nil
	}
	token := []byte(placeholder)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.Contains(data, token) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		out := bytes.ReplaceAll(data, token, []byte(name))
		if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// initialCommit makes the project its own fresh repository with one commit
// containing everything the generator and the overlay produced.
func initialCommit(projectDir string) error {
	for _, args := range [][]string{
		{"init"},
		{"add", "-A"},
		{"commit", "-m", "Initial commit"},
	} {
		if _, err := gitutil.Run(projectDir, args...); err != nil {
			return err
		}
	}
	return nil
}
