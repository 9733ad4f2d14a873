//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// StubPushGateCommand is a stub implementation of commands.PushGate.
type StubPushGateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *commands.GateResult
	LastRequest      entities.PushRequest
	LastSettings     *entities.Settings
	LastOpts         commands.GateOptions
}

var _ commands.PushGate = (*StubPushGateCommand)(nil)

func (s *StubPushGateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	request entities.PushRequest,
	opts commands.GateOptions,
) (*commands.GateResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastRequest = request
	s.LastOpts = opts
	return s.Result, s.ExecuteErr
}
