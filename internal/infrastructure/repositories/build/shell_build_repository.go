package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// ShellBuildRepository runs the build command through the platform shell,
// streaming its output to the configured writers.
type ShellBuildRepository struct {
	stdout io.Writer
	stderr io.Writer
}

var _ repositories.BuildRepository = (*ShellBuildRepository)(nil)

// NewShellBuildRepository creates a build repository writing to the process output.
func NewShellBuildRepository() *ShellBuildRepository {
	return NewShellBuildRepositoryWithOutput(os.Stdout, os.Stderr)
}

// NewShellBuildRepositoryWithOutput creates a build repository writing to the given writers.
func NewShellBuildRepositoryWithOutput(stdout, stderr io.Writer) *ShellBuildRepository {
	return &ShellBuildRepository{stdout: stdout, stderr: stderr}
}

// Run executes command with dir as working directory. A non-zero exit status is an error.
func (it *ShellBuildRepository) Run(ctx context.Context, dir, command string) error {
	shell, flag := shellFor(runtime.GOOS)
	cmd := exec.CommandContext(ctx, shell, flag, command)
	cmd.Dir = dir
	cmd.Stdout = it.stdout
	cmd.Stderr = it.stderr

	logger.Debugf("Running %s %s %q in %s", shell, flag, command, dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build command %q failed: %w", command, err)
	}
	return nil
}

func shellFor(goos string) (string, string) {
	if goos == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}
