package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// InstallController handles the "install" subcommand.
type InstallController struct {
	command    commands.Install
	executable func() (string, error)
}

// NewInstallController creates a new InstallController.
func NewInstallController(command commands.Install) *InstallController {
	return &InstallController{command: command, executable: os.Executable}
}

// GetBind returns the Cobra command metadata for the install controller.
func (it *InstallController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "install",
		Short: "Install the pre-push hook into the current repository",
	}
}

// Execute writes the hook script.
func (it *InstallController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, closeLog, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		return
	}
	defer closeLog()

	executable, err := it.executable()
	if err != nil {
		logger.Errorf("Failed to resolve the rebuildgate executable: %v", err)
		return
	}
	force, _ := cmd.Flags().GetBool("force")

	hookPath, err := it.command.Execute(ctx, settings, commands.InstallOptions{
		WorkingDir: workingDirectory(),
		Executable: executable,
		Force:      force,
	})
	if err != nil {
		logger.Errorf("Install failed: %v", err)
		return
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), hookPath)
}

// AddFlags adds the install-specific flags to the given Cobra command.
func (it *InstallController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Overwrite an existing pre-push hook")
}
