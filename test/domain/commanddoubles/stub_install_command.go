//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// StubInstallCommand is a stub implementation of commands.Install.
type StubInstallCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	HookPath         string
	LastOpts         commands.InstallOptions
}

var _ commands.Install = (*StubInstallCommand)(nil)

func (s *StubInstallCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.InstallOptions,
) (string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.HookPath, s.ExecuteErr
}
