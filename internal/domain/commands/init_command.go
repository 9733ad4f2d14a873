package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

const (
	// DefaultConfigFileName is the file written by the init command.
	DefaultConfigFileName = ".rebuildgate.yaml"

	configFileMode = 0o644
	configHeader   = "# rebuildgate configuration; every key can be overridden with REBUILDGATE_<KEY>\n"
)

// Init is the interface for the init command.
type Init interface {
	Execute(ctx context.Context, opts InitOptions) error
}

// InitOptions holds runtime options for the init command.
type InitOptions struct {
	Path  string
	Force bool
}

// InitCommand writes a configuration file holding the default settings.
type InitCommand struct {
	fs afero.Fs
}

// NewInitCommand creates a new InitCommand.
func NewInitCommand(fs afero.Fs) *InitCommand {
	return &InitCommand{fs: fs}
}

func (it *InitCommand) Execute(_ context.Context, opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = DefaultConfigFileName
	}

	exists, err := afero.Exists(it.fs, path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := yaml.Marshal(entities.DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed to render default settings: %w", err)
	}

	if writeErr := afero.WriteFile(it.fs, path, append([]byte(configHeader), data...), configFileMode); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}

	logger.Infof("Wrote default configuration to %s", path)
	return nil
}
