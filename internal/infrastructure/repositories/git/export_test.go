package git

import (
	"context"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// ParseReflogEntry exports parseReflogEntry for testing.
var ParseReflogEntry = parseReflogEntry //nolint:gochecknoglobals // test export

// NewCLIVersionControlRepositoryWithRunner creates a CLI repository backed by a fake runner.
func NewCLIVersionControlRepositoryWithRunner(
	repoDir string,
	run func(ctx context.Context, dir string, args ...string) ([]byte, error),
) repositories.VersionControlRepository {
	return &CLIVersionControlRepository{repoDir: repoDir, run: run}
}
