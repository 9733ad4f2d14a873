//go:build unit

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitRepo "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories/git"
)

type nativeFixture struct {
	dir  string
	repo *gogit.Repository
}

func newNativeFixture(t *testing.T) *nativeFixture {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &nativeFixture{dir: dir, repo: repo}
}

func (f *nativeFixture) commit(t *testing.T, when time.Time, files map[string]string) plumbing.Hash {
	t.Helper()
	worktree, err := f.repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		path := filepath.Join(f.dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		_, addErr := worktree.Add(name)
		require.NoError(t, addErr)
	}

	signature := &object.Signature{Name: "Dev", Email: "dev@example.com", When: when}
	hash, err := worktree.Commit("change", &gogit.CommitOptions{Author: signature, Committer: signature})
	require.NoError(t, err)
	return hash
}

func TestNativeVersionControlRepositoryLastCommitTime(t *testing.T) {
	t.Parallel()

	t.Run("should return the newest commit touching the path", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		first := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
		second := time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)
		fixture.commit(t, first, map[string]string{"src/Controllers/A.cs": "a", "src/Models/User.cs": "u"})
		fixture.commit(t, second, map[string]string{"src/Models/User.cs": "u2"})
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		controllersTime, controllersFound := repo.LastCommitTime(
			context.Background(), filepath.Join(fixture.dir, "src", "Controllers"),
		)
		modelsTime, modelsFound := repo.LastCommitTime(context.Background(), "src/Models/User.cs")

		// then
		require.True(t, controllersFound)
		require.True(t, modelsFound)
		assert.True(t, controllersTime.Equal(first))
		assert.True(t, modelsTime.Equal(second))
	})

	t.Run("should report absent for untracked paths", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		fixture.commit(t, time.Now(), map[string]string{"tracked.cs": "t"})
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		_, found := repo.LastCommitTime(context.Background(), "untracked.cs")

		// then
		assert.False(t, found)
	})

	t.Run("should report absent outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		repo := gitRepo.NewNativeVersionControlRepository(t.TempDir())

		// when
		_, found := repo.LastCommitTime(context.Background(), "any.cs")

		// then
		assert.False(t, found)
	})
}

func TestNativeVersionControlRepositoryLastPushTime(t *testing.T) {
	t.Parallel()

	t.Run("should read the newest checkout entry from the HEAD reflog", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		zero := "0000000000000000000000000000000000000000"
		reflog := zero + " 1111111111111111111111111111111111111111 Dev <dev@example.com> 1704103200 +0000\tcommit (initial): init\n" +
			"1111111111111111111111111111111111111111 2222222222222222222222222222222222222222 Dev <dev@example.com> 1704189600 +0100\tcheckout: moving from master to feature\n" +
			"2222222222222222222222222222222222222222 3333333333333333333333333333333333333333 Dev <dev@example.com> 1704276000 +0000\tcommit: more\n"
		logsDir := filepath.Join(fixture.dir, ".git", "logs")
		require.NoError(t, os.MkdirAll(logsDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(logsDir, "HEAD"), []byte(reflog), 0o600))
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		pushTime, found := repo.LastPushTime(context.Background())

		// then
		require.True(t, found)
		assert.Equal(t, int64(1704189600), pushTime.Unix())
		_, offset := pushTime.Zone()
		assert.Equal(t, 3600, offset)
	})

	t.Run("should report absent without a reflog", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		_, found := repo.LastPushTime(context.Background())

		// then
		assert.False(t, found)
	})
}

func TestNativeVersionControlRepositoryStagedFiles(t *testing.T) {
	t.Parallel()

	t.Run("should list index changes against the remote tracking branch", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		base := fixture.commit(t, time.Now(), map[string]string{
			"src/Controllers/A.cs": "a",
			"src/Models/User.cs":   "u",
		})
		require.NoError(t, fixture.repo.Storer.SetReference(
			plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", "master"), base),
		))
		fixture.commit(t, time.Now(), map[string]string{
			"src/Models/User.cs": "u2",
			"src/Models/Role.cs": "r",
		})
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		staged, err := repo.StagedFiles(context.Background(), "origin", "master")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"src/Models/Role.cs", "src/Models/User.cs"}, staged)
	})

	t.Run("should fail for an unknown remote branch", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		fixture.commit(t, time.Now(), map[string]string{"a.cs": "a"})
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		_, err := repo.StagedFiles(context.Background(), "origin", "missing")

		// then
		require.Error(t, err)
	})
}

func TestNativeVersionControlRepositoryBranchAndHooks(t *testing.T) {
	t.Parallel()

	t.Run("should return the checked out branch and the hooks directory", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newNativeFixture(t)
		fixture.commit(t, time.Now(), map[string]string{"a.cs": "a"})
		repo := gitRepo.NewNativeVersionControlRepository(fixture.dir)

		// when
		branch, branchErr := repo.CurrentBranch(context.Background())
		hooks, hooksErr := repo.HooksDirectory(context.Background())

		// then
		require.NoError(t, branchErr)
		require.NoError(t, hooksErr)
		assert.Equal(t, "master", branch)
		assert.Equal(t, filepath.Join(fixture.dir, ".git", "hooks"), hooks)
	})
}

func TestParseReflogEntry(t *testing.T) {
	t.Parallel()

	t.Run("should accept checkout entries only", func(t *testing.T) {
		t.Parallel()

		// given
		checkout := "a b Dev <dev@example.com> 1704189600 -0230\tcheckout: moving from a to b"
		commit := "a b Dev <dev@example.com> 1704189600 +0000\tcommit: x"

		// when
		when, ok := gitRepo.ParseReflogEntry(checkout)
		_, commitOK := gitRepo.ParseReflogEntry(commit)

		// then
		require.True(t, ok)
		assert.False(t, commitOK)
		_, offset := when.Zone()
		assert.Equal(t, -(2*3600 + 30*60), offset)
	})

	t.Run("should reject malformed entries", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"",
			"no tab checkout",
			"a b Dev <dev@example.com> notanumber +0000\tcheckout: x",
			"a b Dev <dev@example.com> 1704189600 0000\tcheckout: x",
		}

		for _, input := range inputs {
			// when
			_, ok := gitRepo.ParseReflogEntry(input)

			// then
			assert.False(t, ok, "input %q", input)
		}
	})
}
