package commands

import (
	"context"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// Check is the interface for the check command (detection without building).
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) (*Inspection, error)
}

// CheckOptions holds runtime options for the check command.
type CheckOptions struct {
	Remote     string
	Branch     string // empty: the checked-out branch
	WorkingDir string
}

// CheckCommand reports the detection inputs and decision without running the build.
type CheckCommand struct {
	inspector *Inspector
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(inspector *Inspector) *CheckCommand {
	return &CheckCommand{inspector: inspector}
}

func (it *CheckCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CheckOptions,
) (*Inspection, error) {
	request := entities.PushRequest{Remote: opts.Remote}
	if opts.Branch != "" {
		request.RemoteRef = "refs/heads/" + opts.Branch
	}
	return it.inspector.Inspect(ctx, settings, request, opts.WorkingDir)
}
