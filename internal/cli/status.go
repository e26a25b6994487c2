package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/gitutil"
	"github.com/slicekit/slicer/internal/project"
	"github.com/slicekit/slicer/internal/timefmt"
)

func newStatusCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show every slice worktree and its branch state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				return runStatusRaw(cmd)
			}
			return runStatus(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "pass through the native git worktree listing")
	return cmd
}

// runStatusRaw passes through git's own worktree listing.
func runStatusRaw(cmd *cobra.Command) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}
	out, err := gitutil.Run(proj.Root, "worktree", "list")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}
	dirs, err := proj.ListSliceDirs()
	if err != nil {
		return err
	}
	existing := make(map[string]project.SliceDir, len(dirs))
	for _, dir := range dirs {
		existing[dir.Name] = dir
	}

	now := time.Now()
	contracts := proj.ContractsBranch()
	for _, name := range proj.Config.Slices {
		dir, ok := existing[name]
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-12s not created (run `slicer create-all`)\n", name)
			continue
		}
		delete(existing, name)
		printSliceStatus(cmd, name, dir.Path, contracts, now)
	}
	// Directories matching the pattern but absent from the configured list.
	for _, dir := range dirs {
		if _, stray := existing[dir.Name]; stray {
			printSliceStatus(cmd, dir.Name+" (unlisted)", dir.Path, contracts, now)
		}
	}
	return nil
}

func printSliceStatus(cmd *cobra.Command, label, path, contracts string, now time.Time) {
	branch, err := gitutil.CurrentBranch(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", label, err)
		return
	}
	dirty, err := gitutil.Dirty(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", label, err)
		return
	}
	dirtyMarker := ""
	if dirty {
		dirtyMarker = "!"
	}
	ahead, behind, err := gitutil.AheadBehind(path, contracts)
	if err != nil {
		// Contracts branch may not exist yet; show the branch alone.
		ahead, behind = 0, 0
	}
	ts, err := gitutil.HeadTimestamp(path)
	if err != nil {
		// The row is still worth rendering; the timestamp shows as unknown.
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", label, err)
	}

	wd, _ := os.Getwd()
	prefix := "  "
	if wd != "" && isWithin(wd, path) {
		prefix = "* "
	}
	fmt.Fprintf(
		cmd.OutOrStdout(),
		"%s%-12s %-24s %s\n",
		prefix,
		label,
		fmt.Sprintf("%s%s ↑%d ↓%d", branch, dirtyMarker, ahead, behind),
		timefmt.Relative(ts, now),
	)
}
