package cli

import (
	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/slice"
)

func newCreateAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-all",
		Short: "Create a branch and sibling worktree for every configured slice",
		Args:  cobra.NoArgs,
		RunE:  runCreateAll,
	}
}

func runCreateAll(cmd *cobra.Command, args []string) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}
	lock, err := proj.Lock()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	results := slice.CreateAll(proj)
	printResults(cmd.OutOrStdout(), results)
	return summarizeFailures(results, "create")
}
