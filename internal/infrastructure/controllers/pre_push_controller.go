package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// PrePushController handles the "pre-push" subcommand invoked by the git hook.
type PrePushController struct {
	command commands.PushGate
	exit    func(code int)
}

// NewPrePushController creates a new PrePushController.
func NewPrePushController(command commands.PushGate) *PrePushController {
	return &PrePushController{command: command, exit: os.Exit}
}

// GetBind returns the Cobra command metadata for the pre-push controller.
func (it *PrePushController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "pre-push <remote> <url> [<local_ref> <local_oid> <remote_ref> <remote_oid>]",
		Short: "Rebuild the project when the push carries changes the build has not seen",
		Long: `Run by the git pre-push hook. Compares the commit times of the configured
root directories with the last push and the build artifact, follows source
dependencies to staged files, and runs the build command when needed.

The ref tuple is read from the arguments or, as git sends it, from stdin.
The push is never blocked unless enforce_build is set and the build fails.`,
	}
}

// Execute runs the gate for the current push.
func (it *PrePushController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	request, err := entities.ParsePushRequest(args, cmd.InOrStdin())
	if err != nil {
		logger.Errorf("Invalid pre-push invocation: %v", err)
		return
	}

	settings, closeLog, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		return
	}
	defer closeLog()

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if _, gateErr := it.command.Execute(ctx, settings, request, commands.GateOptions{
		DryRun:     dryRun,
		WorkingDir: workingDirectory(),
	}); gateErr != nil {
		logger.Errorf("Push rejected: %v", gateErr)
		closeLog()
		it.exit(1)
	}
}
