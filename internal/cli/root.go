package cli

import (
	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/version"
)

func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "slicer",
		Short:         "Scaffold web projects and orchestrate slice worktrees",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runStatus,
	}

	cmd.AddCommand(
		newInitCommand(),
		newSetupCommand(),
		newStatusCommand(),
		newCreateAllCommand(),
		newSyncCommand(),
		newCleanCommand(),
		newDoctorCommand(),
		newVersionCommand(),
	)

	return cmd
}
