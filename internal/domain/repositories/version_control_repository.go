package repositories

import (
	"context"
	"time"
)

// VersionControlRepository abstracts the version-control queries the rebuild
// heuristic depends on. Lookups that fail report "absent" rather than an error,
// since missing history is never a reason to rebuild.
type VersionControlRepository interface {
	// LastCommitTime returns the time of the most recent commit touching path.
	LastCommitTime(ctx context.Context, path string) (time.Time, bool)

	// LastPushTime returns the time of the most recent checkout recorded in the reflog.
	LastPushTime(ctx context.Context) (time.Time, bool)

	// StagedFiles lists the paths that differ between the index and <remote>/<branch>.
	StagedFiles(ctx context.Context, remote, branch string) ([]string, error)

	// CurrentBranch returns the short name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// HooksDirectory returns the directory git reads hook scripts from.
	HooksDirectory(ctx context.Context) (string, error)
}
