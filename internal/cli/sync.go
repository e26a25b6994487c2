package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/slice"
)

func newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rebase every slice worktree onto the contracts branch",
		Args:  cobra.NoArgs,
		RunE:  runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}
	lock, err := proj.Lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	results, err := slice.Sync(proj)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no slice worktrees to sync")
		return nil
	}
	printResults(cmd.OutOrStdout(), results)
	return summarizeFailures(results, "sync")
}
