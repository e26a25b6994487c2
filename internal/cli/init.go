package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/config"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default .slicer.toml to the repository root",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}
	if _, err := os.Stat(proj.ConfigPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "slicer already initialized at %s\n", proj.ConfigPath)
		return nil
	}
	if err := config.Save(proj.ConfigPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", proj.ConfigPath)
	return nil
}
