//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// StubVersionControlRepository implements repositories.VersionControlRepository
// with canned answers and records the lookups it receives.
type StubVersionControlRepository struct {
	mu sync.Mutex

	// --- LastCommitTime ---
	CommitTimes     map[string]time.Time // path -> commit time; missing paths are absent
	CommitTimeCalls []string

	// --- LastPushTime ---
	PushTime  *time.Time
	PushCalls int

	// --- StagedFiles ---
	Staged      []string
	StagedErr   error
	StagedCalls []StagedFilesCall

	// --- CurrentBranch ---
	Branch    string
	BranchErr error

	// --- HooksDirectory ---
	HooksDir    string
	HooksDirErr error
}

// StagedFilesCall records a single invocation of StagedFiles.
type StagedFilesCall struct {
	Remote string
	Branch string
}

var _ repositories.VersionControlRepository = (*StubVersionControlRepository)(nil)

func (s *StubVersionControlRepository) LastCommitTime(_ context.Context, path string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CommitTimeCalls = append(s.CommitTimeCalls, path)
	commitTime, ok := s.CommitTimes[path]
	return commitTime, ok
}

func (s *StubVersionControlRepository) LastPushTime(_ context.Context) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PushCalls++
	if s.PushTime == nil {
		return time.Time{}, false
	}
	return *s.PushTime, true
}

func (s *StubVersionControlRepository) StagedFiles(_ context.Context, remote, branch string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StagedCalls = append(s.StagedCalls, StagedFilesCall{Remote: remote, Branch: branch})
	return s.Staged, s.StagedErr
}

func (s *StubVersionControlRepository) CurrentBranch(_ context.Context) (string, error) {
	return s.Branch, s.BranchErr
}

func (s *StubVersionControlRepository) HooksDirectory(_ context.Context) (string, error) {
	return s.HooksDir, s.HooksDirErr
}

// CommitTimeCallCount returns how many commit-time lookups were made for path.
func (s *StubVersionControlRepository) CommitTimeCallCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, call := range s.CommitTimeCalls {
		if call == path {
			count++
		}
	}
	return count
}
