package git

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

const (
	reflogHeadPath = "logs/HEAD"
	hooksDirName   = "hooks"
	zoneLength     = 5 // "+hhmm"
)

// NativeVersionControlRepository answers version-control queries in-process with go-git.
// The repository is opened lazily on first use.
type NativeVersionControlRepository struct {
	repoDir string

	once    sync.Once
	repo    *gogit.Repository
	openErr error
}

var _ repositories.VersionControlRepository = (*NativeVersionControlRepository)(nil)

// NewNativeVersionControlRepository creates a repository rooted at repoDir.
func NewNativeVersionControlRepository(repoDir string) repositories.VersionControlRepository {
	return &NativeVersionControlRepository{repoDir: repoDir}
}

func (it *NativeVersionControlRepository) open() (*gogit.Repository, error) {
	it.once.Do(func() {
		//nolint:exhaustruct // only DetectDotGit is relevant
		it.repo, it.openErr = gogit.PlainOpenWithOptions(it.repoDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	})
	return it.repo, it.openErr
}

// LastCommitTime walks the log newest-first and returns the first commit touching path.
func (it *NativeVersionControlRepository) LastCommitTime(ctx context.Context, path string) (time.Time, bool) {
	if ctx.Err() != nil {
		return time.Time{}, false
	}

	repo, err := it.open()
	if err != nil {
		logger.Debugf("Failed to open repository %s: %v", it.repoDir, err)
		return time.Time{}, false
	}

	rel, err := it.relativePath(repo, path)
	if err != nil {
		logger.Debugf("Path %s is outside the work tree: %v", path, err)
		return time.Time{}, false
	}

	//nolint:exhaustruct // defaults start from HEAD
	commits, err := repo.Log(&gogit.LogOptions{
		Order: gogit.LogOrderCommitterTime,
		PathFilter: func(candidate string) bool {
			return rel == "." || candidate == rel || strings.HasPrefix(candidate, rel+"/")
		},
	})
	if err != nil {
		logger.Debugf("Failed to read log for %s: %v", path, err)
		return time.Time{}, false
	}
	defer commits.Close()

	commit, err := commits.Next()
	if err != nil {
		return time.Time{}, false
	}
	return commit.Committer.When, true
}

func (it *NativeVersionControlRepository) relativePath(repo *gogit.Repository, path string) (string, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}

	absolute := path
	if !filepath.IsAbs(absolute) {
		absolute = filepath.Join(it.repoDir, path)
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), absolute)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is not inside %s", absolute, worktree.Filesystem.Root())
	}
	return rel, nil
}

// LastPushTime reads the HEAD reflog file and returns the newest checkout entry.
func (it *NativeVersionControlRepository) LastPushTime(ctx context.Context) (time.Time, bool) {
	if ctx.Err() != nil {
		return time.Time{}, false
	}

	storage, err := it.storage()
	if err != nil {
		logger.Debugf("Failed to access repository storage: %v", err)
		return time.Time{}, false
	}

	file, err := storage.Filesystem().Open(reflogHeadPath)
	if err != nil {
		logger.Debugf("Failed to open reflog: %v", err)
		return time.Time{}, false
	}
	defer file.Close()

	// entries are appended oldest first
	var (
		latest time.Time
		found  bool
	)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if when, ok := parseReflogEntry(scanner.Text()); ok {
			latest, found = when, true
		}
	}
	return latest, found
}

// StagedFiles compares the index against the tree of refs/remotes/<remote>/<branch>.
func (it *NativeVersionControlRepository) StagedFiles(ctx context.Context, remote, branch string) ([]string, error) {
	if remote == "" || branch == "" {
		return nil, errors.New("remote and branch are required to compute staged files")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := it.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s/%s: %w", remote, branch, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", ref.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", ref.Hash(), err)
	}

	remoteFiles := make(map[string]plumbing.Hash)
	if walkErr := tree.Files().ForEach(func(file *object.File) error {
		remoteFiles[file.Name] = file.Hash
		return nil
	}); walkErr != nil {
		return nil, fmt.Errorf("failed to walk tree of %s: %w", ref.Hash(), walkErr)
	}

	index, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	var changed []string
	for _, entry := range index.Entries {
		if hash, ok := remoteFiles[entry.Name]; !ok || hash != entry.Hash {
			changed = append(changed, entry.Name)
		}
		delete(remoteFiles, entry.Name)
	}
	for name := range remoteFiles {
		changed = append(changed, name) // deleted in the index
	}
	sort.Strings(changed)
	return changed, nil
}

// CurrentBranch returns the short name of HEAD, or "HEAD" when detached.
func (it *NativeVersionControlRepository) CurrentBranch(_ context.Context) (string, error) {
	repo, err := it.open()
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

// HooksDirectory returns <git dir>/hooks. core.hooksPath is not consulted.
func (it *NativeVersionControlRepository) HooksDirectory(_ context.Context) (string, error) {
	storage, err := it.storage()
	if err != nil {
		return "", err
	}
	return filepath.Join(storage.Filesystem().Root(), hooksDirName), nil
}

func (it *NativeVersionControlRepository) storage() (*filesystem.Storage, error) {
	repo, err := it.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return nil, errors.New("repository is not backed by a filesystem")
	}
	return storage, nil
}

// parseReflogEntry parses a raw reflog line:
// "<old> <new> <name> <<email>> <unix seconds> <+hhmm>\t<message>".
// Only checkout entries are accepted.
func parseReflogEntry(line string) (time.Time, bool) {
	header, message, found := strings.Cut(line, "\t")
	if !found || !strings.Contains(message, checkoutMarker) {
		return time.Time{}, false
	}

	fields := strings.Fields(header)
	if len(fields) < 2 { //nolint:mnd // seconds and zone
		return time.Time{}, false
	}

	seconds, err := strconv.ParseInt(fields[len(fields)-2], 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	location, ok := parseZone(fields[len(fields)-1])
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(seconds, 0).In(location), true
}

func parseZone(zone string) (*time.Location, bool) {
	if len(zone) != zoneLength || (zone[0] != '+' && zone[0] != '-') {
		return nil, false
	}

	hours, hoursErr := strconv.Atoi(zone[1:3])
	minutes, minutesErr := strconv.Atoi(zone[3:5])
	if hoursErr != nil || minutesErr != nil {
		return nil, false
	}

	offset := (hours*60 + minutes) * 60 //nolint:mnd // minutes and seconds
	if zone[0] == '-' {
		offset = -offset
	}
	return time.FixedZone("", offset), true
}
