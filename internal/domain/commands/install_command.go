package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories"
)

const (
	hookName   = "pre-push"
	hookMarker = "# managed by rebuildgate"
	hookMode   = 0o755
	dirMode    = 0o755
)

// Install is the interface for the install command.
type Install interface {
	Execute(ctx context.Context, settings *entities.Settings, opts InstallOptions) (string, error)
}

// InstallOptions holds runtime options for the install command.
type InstallOptions struct {
	WorkingDir string
	Executable string // path of the rebuildgate binary the hook execs
	Force      bool   // overwrite a pre-push hook not written by rebuildgate
}

// InstallCommand writes the pre-push hook script into the repository.
type InstallCommand struct {
	fs          afero.Fs
	vcsRegistry *infraRepos.VersionControlRegistry
}

// NewInstallCommand creates a new InstallCommand.
func NewInstallCommand(fs afero.Fs, vcsRegistry *infraRepos.VersionControlRegistry) *InstallCommand {
	return &InstallCommand{fs: fs, vcsRegistry: vcsRegistry}
}

// Execute installs the hook and returns its path.
func (it *InstallCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts InstallOptions,
) (string, error) {
	if strings.TrimSpace(opts.Executable) == "" {
		return "", fmt.Errorf("executable path is required")
	}

	baseDir := settings.BaseDirectory(opts.WorkingDir)
	vcs, err := it.vcsRegistry.Get(settings.Git.Backend, baseDir, 0)
	if err != nil {
		return "", fmt.Errorf("failed to initialize git backend: %w", err)
	}

	hooksDir, err := vcs.HooksDirectory(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to locate hooks directory: %w", err)
	}
	hookPath := filepath.Join(hooksDir, hookName)

	existing, readErr := afero.ReadFile(it.fs, hookPath)
	if readErr == nil && !strings.Contains(string(existing), hookMarker) && !opts.Force {
		return "", fmt.Errorf("%s already exists and was not installed by rebuildgate (use --force to overwrite)", hookPath)
	}

	if mkdirErr := it.fs.MkdirAll(hooksDir, dirMode); mkdirErr != nil {
		return "", fmt.Errorf("failed to create %s: %w", hooksDir, mkdirErr)
	}
	if writeErr := afero.WriteFile(it.fs, hookPath, []byte(hookScript(opts.Executable)), hookMode); writeErr != nil {
		return "", fmt.Errorf("failed to write %s: %w", hookPath, writeErr)
	}
	if chmodErr := it.fs.Chmod(hookPath, hookMode); chmodErr != nil {
		return "", fmt.Errorf("failed to make %s executable: %w", hookPath, chmodErr)
	}

	logger.Infof("Installed pre-push hook at %s", hookPath)
	return hookPath, nil
}

// hookScript forwards the hook arguments and stdin to `rebuildgate pre-push`.
func hookScript(executable string) string {
	return fmt.Sprintf("#!/bin/sh\n%s\nexec %s pre-push \"$@\"\n", hookMarker, shellQuote(executable))
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
