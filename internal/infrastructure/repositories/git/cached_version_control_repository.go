package git

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

type commitTime struct {
	when  time.Time
	found bool
}

// CachedVersionControlRepository memoizes commit-time lookups, which dominate the
// cost of a scan when dependency traversal revisits the same paths.
type CachedVersionControlRepository struct {
	repositories.VersionControlRepository

	commitTimes *lru.Cache[string, commitTime]
}

var _ repositories.VersionControlRepository = (*CachedVersionControlRepository)(nil)

// NewCachedVersionControlRepository wraps inner with an LRU cache of the given size.
func NewCachedVersionControlRepository(
	inner repositories.VersionControlRepository,
	size int,
) (*CachedVersionControlRepository, error) {
	cache, err := lru.New[string, commitTime](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit time cache: %w", err)
	}
	return &CachedVersionControlRepository{
		VersionControlRepository: inner,
		commitTimes:              cache,
	}, nil
}

// LastCommitTime returns the cached answer for path, querying the inner repository once.
func (it *CachedVersionControlRepository) LastCommitTime(ctx context.Context, path string) (time.Time, bool) {
	key := filepath.Clean(path)
	if cached, ok := it.commitTimes.Get(key); ok {
		return cached.when, cached.found
	}

	when, found := it.VersionControlRepository.LastCommitTime(ctx, path)
	if ctx.Err() == nil {
		it.commitTimes.Add(key, commitTime{when: when, found: found})
	}
	return when, found
}
