//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// SpyBuildRepository implements repositories.BuildRepository and records every run.
type SpyBuildRepository struct {
	RunErr error
	Calls  []BuildCall
}

// BuildCall records a single invocation of Run.
type BuildCall struct {
	Dir     string
	Command string
}

var _ repositories.BuildRepository = (*SpyBuildRepository)(nil)

func (s *SpyBuildRepository) Run(_ context.Context, dir, command string) error {
	s.Calls = append(s.Calls, BuildCall{Dir: dir, Command: command})
	return s.RunErr
}
