package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/slicekit/slicer/internal/config"
	"github.com/slicekit/slicer/internal/gitutil"
)

var (
	// ErrNotRepository indicates the working directory is not inside a git repository.
	ErrNotRepository = errors.New("not inside a git repository")
	// ErrLocked indicates another slicer instance is operating on the repository.
	ErrLocked = errors.New("another slicer instance is already operating on this repository")
)

const lockFileName = "slicer.lock"

// Project is a slicer-managed repository discovered on disk. Slice worktrees
// live beside Root under Parent, named with the configured directory prefix.
type Project struct {
	Root       string
	Parent     string
	ConfigPath string
	Config     config.Config
}

// Discover resolves the repository containing start and loads its config.
func Discover(start string) (*Project, error) {
	root, err := gitutil.TopLevel(start)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrNotRepository, start)
	}
	return Load(root)
}

// Load constructs a Project from a known repository root.
func Load(root string) (*Project, error) {
	cfgPath := filepath.Join(root, config.FileName)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return &Project{
		Root:       root,
		Parent:     filepath.Dir(root),
		ConfigPath: cfgPath,
		Config:     cfg,
	}, nil
}

// BranchName maps a slice name to its branch.
func (p *Project) BranchName(slice string) string {
	return p.Config.BranchPrefix + slice
}

// SlicePath maps a slice name to its sibling worktree directory.
func (p *Project) SlicePath(slice string) string {
	return filepath.Join(p.Parent, p.Config.DirPrefix+slice)
}

// ContractsBranch is the branch every other slice rebases onto.
func (p *Project) ContractsBranch() string {
	return p.BranchName(p.Config.Contracts)
}

// SliceDir is an existing sibling directory matching the slice pattern.
type SliceDir struct {
	Name string
	Path string
}

// ListSliceDirs scans the parent directory for slice worktrees. Results are
// sorted by name; directories that merely match the prefix but are not git
// worktrees are still included, so clean can sweep up broken remnants.
func (p *Project) ListSliceDirs() ([]SliceDir, error) {
	entries, err := os.ReadDir(p.Parent)
	if err != nil {
		return nil, err
	}
	var result []SliceDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, p.Config.DirPrefix) || name == filepath.Base(p.Root) {
			continue
		}
		result = append(result, SliceDir{
			Name: strings.TrimPrefix(name, p.Config.DirPrefix),
			Path: filepath.Join(p.Parent, name),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Lock takes the repository-wide orchestration lock. Create, sync, and clean
// are unsafe to run concurrently against one repository, so each takes this
// exclusive advisory lock and fails fast when it is held. The caller must
// Unlock the returned handle.
func (p *Project) Lock() (*flock.Flock, error) {
	commonDir, err := gitutil.CommonDir(p.Root)
	if err != nil {
		return nil, err
	}
	fl := flock.New(filepath.Join(commonDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire orchestration lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return fl, nil
}
