package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// PushGate is the interface for the pre-push gate command.
type PushGate interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		request entities.PushRequest,
		opts GateOptions,
	) (*GateResult, error)
}

// GateOptions holds runtime options for a single gate run.
type GateOptions struct {
	DryRun     bool
	WorkingDir string
}

// GateResult describes what the gate did.
type GateResult struct {
	Skipped    bool
	SkipReason string
	Inspection *Inspection
	Built      bool
	BuildErr   error
}

// PushGateCommand decides whether the pushed project must be rebuilt and runs the build.
type PushGateCommand struct {
	inspector *Inspector
	builder   repositories.BuildRepository
}

// NewPushGateCommand creates a new PushGateCommand.
func NewPushGateCommand(inspector *Inspector, builder repositories.BuildRepository) *PushGateCommand {
	return &PushGateCommand{
		inspector: inspector,
		builder:   builder,
	}
}

// Execute runs the gate. A failed build is reported in the result and only
// returned as an error when settings.EnforceBuild is set.
func (it *PushGateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	request entities.PushRequest,
	opts GateOptions,
) (*GateResult, error) {
	if request.IsDelete() {
		logger.Info("Branch deletion push detected, skipping rebuild check")
		return &GateResult{Skipped: true, SkipReason: "delete push"}, nil
	}
	if !request.HasRefs() {
		logger.Info("Nothing to push, skipping rebuild check")
		return &GateResult{Skipped: true, SkipReason: "no refs"}, nil
	}

	inspection, err := it.inspector.Inspect(ctx, settings, request, opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	result := &GateResult{Inspection: inspection}
	if inspection.Aborted {
		result.Skipped = true
		result.SkipReason = inspection.AbortReason
		return result, nil
	}

	if !inspection.Decision.Rebuild {
		logger.Info("Rebuild not necessary :)")
		return result, nil
	}

	logger.Infof("Project needs to be rebuilt: %s", inspection.Decision)
	if opts.DryRun {
		logger.Infof("[dry-run] Would run %q in %s", settings.BuildCommand, inspection.BaseDirectory)
		return result, nil
	}

	logger.Info("Rebuild initiated ...")
	result.Built = true
	if buildErr := it.builder.Run(ctx, inspection.BaseDirectory, settings.BuildCommand); buildErr != nil {
		result.BuildErr = buildErr
		logger.Errorf("Attempt to rebuild project failed :( %v", buildErr)
		if settings.EnforceBuild {
			return result, fmt.Errorf("rebuild failed: %w", buildErr)
		}
		return result, nil
	}

	logger.Info("Rebuild successful :)")
	return result, nil
}
