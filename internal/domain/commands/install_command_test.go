//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rebuildgate/internal/domain/commands"
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories"
	"github.com/rios0rios0/rebuildgate/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/rebuildgate/test/infrastructure/repositorydoubles"
)

const hooksDir = "/repo/.git/hooks"

func newInstallCommand(fs afero.Fs) *commands.InstallCommand {
	vcs := &doubles.StubVersionControlRepository{HooksDir: hooksDir}
	registry := infraRepos.NewVersionControlRegistry()
	registry.Register(entities.GitBackendCLI, func(_ string) repositories.VersionControlRepository {
		return vcs
	})
	return commands.NewInstallCommand(fs, registry)
}

func TestInstallCommandExecute(t *testing.T) {
	t.Parallel()

	settings := entitybuilders.NewSettingsBuilder().WithRepositoryBase(repoDir).BuildSettings()

	t.Run("should write an executable hook that forwards to pre-push", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		cmd := newInstallCommand(fs)

		// when
		hookPath, err := cmd.Execute(context.Background(), settings, commands.InstallOptions{
			Executable: "/usr/local/bin/rebuildgate",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, hooksDir+"/pre-push", hookPath)
		content, readErr := afero.ReadFile(fs, hookPath)
		require.NoError(t, readErr)
		assert.Contains(t, string(content), commands.HookMarker)
		assert.Contains(t, string(content), `exec '/usr/local/bin/rebuildgate' pre-push "$@"`)
		info, statErr := fs.Stat(hookPath)
		require.NoError(t, statErr)
		assert.NotZero(t, info.Mode().Perm()&0o100)
	})

	t.Run("should refuse to overwrite a foreign hook", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, hooksDir+"/pre-push", []byte("#!/bin/sh\nnpm test\n"), 0o755))
		cmd := newInstallCommand(fs)

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.InstallOptions{Executable: "/bin/rebuildgate"})

		// then
		require.Error(t, err)
		content, _ := afero.ReadFile(fs, hooksDir+"/pre-push")
		assert.Equal(t, "#!/bin/sh\nnpm test\n", string(content))
	})

	t.Run("should overwrite a foreign hook when forced", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, hooksDir+"/pre-push", []byte("#!/bin/sh\nnpm test\n"), 0o755))
		cmd := newInstallCommand(fs)

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.InstallOptions{
			Executable: "/bin/rebuildgate",
			Force:      true,
		})

		// then
		require.NoError(t, err)
		content, _ := afero.ReadFile(fs, hooksDir+"/pre-push")
		assert.Contains(t, string(content), commands.HookMarker)
	})

	t.Run("should replace its own hook", func(t *testing.T) {
		t.Parallel()

		// given
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, hooksDir+"/pre-push", []byte(commands.HookScript("/old/rebuildgate")), 0o755))
		cmd := newInstallCommand(fs)

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.InstallOptions{Executable: "/new/rebuildgate"})

		// then
		require.NoError(t, err)
		content, _ := afero.ReadFile(fs, hooksDir+"/pre-push")
		assert.Contains(t, string(content), "/new/rebuildgate")
		assert.NotContains(t, string(content), "/old/rebuildgate")
	})

	t.Run("should require an executable path", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := newInstallCommand(afero.NewMemMapFs())

		// when
		_, err := cmd.Execute(context.Background(), settings, commands.InstallOptions{})

		// then
		require.Error(t, err)
	})
}

func TestHookScript(t *testing.T) {
	t.Parallel()

	t.Run("should quote executable paths with quotes and spaces", func(t *testing.T) {
		t.Parallel()

		// when
		script := commands.HookScript("/opt/it's here/rebuildgate")

		// then
		assert.Contains(t, script, `exec '/opt/it'\''s here/rebuildgate' pre-push "$@"`)
	})
}
