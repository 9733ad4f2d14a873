//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".rebuildgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should carry the hook defaults", func(t *testing.T) {
		t.Parallel()

		// when
		settings := entities.DefaultSettings()

		// then
		assert.Equal(t, []string{"Controllers", "Attributes"}, settings.RootDirectories)
		assert.Equal(t, "swagger", settings.ArtifactName)
		assert.True(t, settings.RequireArtifact)
		assert.False(t, settings.EnforceBuild)
		assert.Equal(t, entities.DefaultMaxDepth, settings.MaxDepth)
		assert.Equal(t, entities.GitBackendCLI, settings.Git.Backend)
		assert.Equal(t, []string{"namespace"}, settings.Dependencies.Extractors)
		assert.Equal(t, "using", settings.Dependencies.ImportKeyword)
		assert.Equal(t, "EdgeZoneRP", settings.Dependencies.NamespaceMarker)
		assert.NoError(t, settings.Validate())
	})
}

func TestNewSettings(t *testing.T) {
	t.Parallel()

	t.Run("should use defaults when no file is given", func(t *testing.T) {
		t.Parallel()

		// when
		settings, err := entities.NewSettings("", nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "swagger", settings.ArtifactName)
	})

	t.Run("should load values from file over defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, `
root_directories: [Handlers]
artifact_name: openapi.json
require_artifact: false
build_command: make build
max_depth: 8
exclude: ["bin", "**/obj/**"]
git:
  backend: native
  cache_size: 0
dependencies:
  extractors: [namespace, msbuild]
  namespace_marker: Contoso
`)

		// when
		settings, err := entities.NewSettings(path, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Handlers"}, settings.RootDirectories)
		assert.Equal(t, "openapi.json", settings.ArtifactName)
		assert.False(t, settings.RequireArtifact)
		assert.Equal(t, "make build", settings.BuildCommand)
		assert.Equal(t, 8, settings.MaxDepth)
		assert.Equal(t, []string{"bin", "**/obj/**"}, settings.Exclude)
		assert.Equal(t, entities.GitBackendNative, settings.Git.Backend)
		assert.Equal(t, 0, settings.Git.CacheSize)
		assert.Equal(t, []string{"namespace", "msbuild"}, settings.Dependencies.Extractors)
		assert.Equal(t, "Contoso", settings.Dependencies.NamespaceMarker)
		assert.Equal(t, "using", settings.Dependencies.ImportKeyword)
	})

	t.Run("should apply changed flags over file values", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "build_command: make build\nmax_depth: 8\n")
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("build-command", "", "")
		flags.Int("max-depth", 0, "")
		flags.Bool("enforce-build", false, "")
		require.NoError(t, flags.Parse([]string{"--build-command", "task build", "--enforce-build"}))

		// when
		settings, err := entities.NewSettings(path, flags)

		// then
		require.NoError(t, err)
		assert.Equal(t, "task build", settings.BuildCommand)
		assert.True(t, settings.EnforceBuild)
		assert.Equal(t, 8, settings.MaxDepth)
	})

	t.Run("should fail for missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"), nil)

		// then
		require.Error(t, err)
	})

	t.Run("should fail validation for unknown git backend", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "git:\n  backend: svn\n")

		// when
		_, err := entities.NewSettings(path, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git.backend")
	})

	t.Run("should fail validation for invalid dependency pattern", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeConfig(t, "dependencies:\n  pattern: \"([\"\n")

		// when
		_, err := entities.NewSettings(path, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dependencies.pattern")
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	t.Run("should reject empty root directories", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.RootDirectories = nil

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root_directories")
	})

	t.Run("should reject blank build command", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.BuildCommand = "  "

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "build_command")
	})

	t.Run("should reject non positive max depth", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.MaxDepth = 0

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_depth")
	})
}

func TestSettingsBaseDirectory(t *testing.T) {
	t.Parallel()

	t.Run("should cut working directory before the git directory", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		workingDir := filepath.Join(string(filepath.Separator), "work", "repo", ".git", "hooks")

		// when
		base := settings.BaseDirectory(workingDir)

		// then
		assert.Equal(t, filepath.Join(string(filepath.Separator), "work", "repo"), base)
	})

	t.Run("should return working directory without dot component", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		workingDir := filepath.Join(string(filepath.Separator), "work", "repo")

		// when / then
		assert.Equal(t, workingDir, settings.BaseDirectory(workingDir))
	})

	t.Run("should keep repository nested under a dot directory", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		workingDir := filepath.Join(string(filepath.Separator), "home", "u", ".local", "src", "repo")

		// when
		base := settings.BaseDirectory(workingDir)

		// then
		assert.Equal(t, workingDir, base)
	})

	t.Run("should strip git directory below a dot directory", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		repo := filepath.Join(string(filepath.Separator), "home", "u", ".local", "src", "repo")
		workingDir := filepath.Join(repo, ".git", "hooks")

		// when
		base := settings.BaseDirectory(workingDir)

		// then
		assert.Equal(t, repo, base)
	})

	t.Run("should resolve relative repository base against working directory", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.RepositoryBase = "service"
		workingDir := filepath.Join(string(filepath.Separator), "work")

		// when / then
		assert.Equal(t, filepath.Join(workingDir, "service"), settings.BaseDirectory(workingDir))
	})
}

func TestSettingsDependencyPattern(t *testing.T) {
	t.Parallel()

	t.Run("should derive non greedy pattern from marker", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Dependencies.NamespaceMarker = "Edge.Zone"

		// when
		pattern := settings.DependencyPattern()

		// then
		assert.Equal(t, `Edge\.Zone.*?;`, pattern)
	})

	t.Run("should prefer configured pattern", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Dependencies.Pattern = `Foo\.[A-Za-z.]+`

		// when / then
		assert.Equal(t, `Foo\.[A-Za-z.]+`, settings.DependencyPattern())
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestExpandEnv(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ExpandEnv("")

		// then
		assert.Empty(t, result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("REBUILDGATE_TEST_SOLUTION", "build.proj")

		// when
		result := entities.ExpandEnv("dotnet build ${REBUILDGATE_TEST_SOLUTION}")

		// then
		assert.Equal(t, "dotnet build build.proj", result)
	})

	t.Run("should replace unset variable with empty string", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("REBUILDGATE_TEST_UNSET", "")

		// when
		result := entities.ExpandEnv("make ${REBUILDGATE_TEST_UNSET}")

		// then
		assert.Equal(t, "make ", result)
	})

	t.Run("should apply environment override to settings", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("REBUILDGATE_ARTIFACT_NAME", "openapi.yaml")

		// when
		settings, err := entities.NewSettings("", nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "openapi.yaml", settings.ArtifactName)
	})
}
