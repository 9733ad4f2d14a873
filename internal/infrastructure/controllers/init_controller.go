package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// InitController handles the "init" subcommand.
type InitController struct {
	command commands.Init
}

// NewInitController creates a new InitController.
func NewInitController(command commands.Init) *InitController {
	return &InitController{command: command}
}

// GetBind returns the Cobra command metadata for the init controller.
func (it *InitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
	}
}

// Execute writes the default configuration.
func (it *InitController) Execute(cmd *cobra.Command, _ []string) {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")

	if err := it.command.Execute(context.Background(), commands.InitOptions{
		Path:  path,
		Force: force,
	}); err != nil {
		logger.Errorf("Init failed: %v", err)
	}
}

// AddFlags adds the init-specific flags to the given Cobra command.
func (it *InitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", commands.DefaultConfigFileName, "Where to write the configuration file")
	cmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}
