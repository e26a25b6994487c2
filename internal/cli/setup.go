package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slicekit/slicer/internal/config"
	"github.com/slicekit/slicer/internal/scaffold"
)

func newSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [project-name]",
		Short: "Generate a project skeleton and overlay the slice templates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSetup,
	}
}

func runSetup(cmd *cobra.Command, args []string) error {
	name := scaffold.DefaultProjectName
	if len(args) == 1 {
		name = args[0]
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	// Setup runs from the template checkout, which need not be a slicer
	// project yet; config falls back to defaults when the file is absent.
	cfg, err := config.Load(filepath.Join(wd, config.FileName))
	if err != nil {
		return err
	}

	_, err = scaffold.Run(scaffold.Options{
		Name:         name,
		TemplateRoot: wd,
		Setup:        cfg.Setup,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	})
	return err
}
