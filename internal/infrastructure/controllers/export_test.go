package controllers

import (
	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
)

// ReportRows exports reportRows for testing.
var ReportRows = reportRows //nolint:gochecknoglobals // test export

// ConfigureLogging exports configureLogging for testing.
var ConfigureLogging = configureLogging //nolint:gochecknoglobals // test export

// NewPrePushControllerWithExit creates a PrePushController with a custom exit function.
func NewPrePushControllerWithExit(command commands.PushGate, exit func(code int)) *PrePushController {
	return &PrePushController{command: command, exit: exit}
}

// NewInstallControllerWithExecutable creates an InstallController with a fixed executable path.
func NewInstallControllerWithExecutable(command commands.Install, executable string) *InstallController {
	return &InstallController{
		command:    command,
		executable: func() (string, error) { return executable, nil },
	}
}
