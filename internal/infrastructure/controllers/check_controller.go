package controllers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// CheckController handles the "check" subcommand.
type CheckController struct {
	command commands.Check
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Report whether a rebuild would be triggered, without building",
		Long: `Gather the same inputs as the pre-push hook (root directories, build artifact,
last push time, staged files) and print them with the rebuild decision.`,
	}
}

// Execute runs the detection and renders the report.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, closeLog, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		return
	}
	defer closeLog()

	remote, _ := cmd.Flags().GetString("remote")
	branch, _ := cmd.Flags().GetString("branch")

	inspection, err := it.command.Execute(ctx, settings, commands.CheckOptions{
		Remote:     remote,
		Branch:     branch,
		WorkingDir: workingDirectory(),
	})
	if err != nil {
		logger.Errorf("Check failed: %v", err)
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Input", "Value"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(reportRows(inspection))
	table.Render()
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("remote", "origin", "Remote the push would go to")
	cmd.Flags().String("branch", "", "Remote branch (default: the checked-out branch)")
}

func reportRows(inspection *commands.Inspection) [][]string {
	rows := [][]string{
		{"Base directory", inspection.BaseDirectory},
		{"Branch", orDash(inspection.Branch)},
		{"Roots", orDash(strings.Join(inspection.Roots, ", "))},
		{"Artifact", orDash(inspection.ArtifactPath)},
		{"Artifact time", formatTime(inspection.ArtifactTime)},
		{"Last push", formatTime(inspection.PushTime)},
		{"Staged files", strconv.Itoa(inspection.Staged.Len())},
		{"Extractor", orDash(inspection.Extractor)},
	}

	if inspection.Aborted {
		return append(rows, []string{"Decision", fmt.Sprintf("skipped: %s", inspection.AbortReason)})
	}
	return append(rows, []string{"Decision", inspection.Decision.String()})
}

func formatTime(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Format(time.DateTime + " -0700")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
