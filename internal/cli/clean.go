package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/slice"
)

func newCleanCommand() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Force-remove every slice worktree, discarding uncommitted changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, dryRun)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be removed without removing anything")
	return cmd
}

func runClean(cmd *cobra.Command, dryRun bool) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}

	if dryRun {
		dirs, err := proj.ListSliceDirs()
		if err != nil {
			return err
		}
		if len(dirs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to remove")
			return nil
		}
		for _, dir := range dirs {
			fmt.Fprintf(cmd.OutOrStdout(), "would remove %s (%s)\n", dir.Name, dir.Path)
		}
		return nil
	}

	lock, err := proj.Lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	results, err := slice.Clean(proj)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to remove")
		return nil
	}
	printResults(cmd.OutOrStdout(), results)
	return summarizeFailures(results, "remove")
}
