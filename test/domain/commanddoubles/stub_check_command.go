//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// StubCheckCommand is a stub implementation of commands.Check.
type StubCheckCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Inspection       *commands.Inspection
	LastOpts         commands.CheckOptions
}

var _ commands.Check = (*StubCheckCommand)(nil)

func (s *StubCheckCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.CheckOptions,
) (*commands.Inspection, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Inspection, s.ExecuteErr
}
