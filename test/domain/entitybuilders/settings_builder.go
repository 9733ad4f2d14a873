//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
// It starts from entities.DefaultSettings with commit-time caching disabled.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    defaultTestSettings(),
	}
}

func defaultTestSettings() entities.Settings {
	settings := *entities.DefaultSettings()
	settings.Git.CacheSize = 0
	return settings
}

// WithRepositoryBase sets the repository base directory.
func (b *SettingsBuilder) WithRepositoryBase(dir string) *SettingsBuilder {
	b.settings.RepositoryBase = dir
	return b
}

// WithRootDirectories sets the root directory names.
func (b *SettingsBuilder) WithRootDirectories(names ...string) *SettingsBuilder {
	b.settings.RootDirectories = names
	return b
}

// WithArtifactName sets the build artifact file name.
func (b *SettingsBuilder) WithArtifactName(name string) *SettingsBuilder {
	b.settings.ArtifactName = name
	return b
}

// WithRequireArtifact sets whether a missing artifact aborts detection.
func (b *SettingsBuilder) WithRequireArtifact(required bool) *SettingsBuilder {
	b.settings.RequireArtifact = required
	return b
}

// WithBuildCommand sets the build command.
func (b *SettingsBuilder) WithBuildCommand(command string) *SettingsBuilder {
	b.settings.BuildCommand = command
	return b
}

// WithEnforceBuild sets whether a failed build blocks the push.
func (b *SettingsBuilder) WithEnforceBuild(enforce bool) *SettingsBuilder {
	b.settings.EnforceBuild = enforce
	return b
}

// WithExclude sets the exclude glob patterns.
func (b *SettingsBuilder) WithExclude(patterns ...string) *SettingsBuilder {
	b.settings.Exclude = patterns
	return b
}

// WithGitBackend sets the git backend name.
func (b *SettingsBuilder) WithGitBackend(backend string) *SettingsBuilder {
	b.settings.Git.Backend = backend
	return b
}

// WithExtractors sets the dependency extractor names.
func (b *SettingsBuilder) WithExtractors(names ...string) *SettingsBuilder {
	b.settings.Dependencies.Extractors = names
	return b
}

// WithBasePath sets the dependency base path.
func (b *SettingsBuilder) WithBasePath(path string) *SettingsBuilder {
	b.settings.Dependencies.BasePath = path
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	settings.RootDirectories = append([]string(nil), b.settings.RootDirectories...)
	settings.Exclude = append([]string(nil), b.settings.Exclude...)
	settings.Dependencies.Extractors = append([]string(nil), b.settings.Dependencies.Extractors...)
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = defaultTestSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    *b.BuildSettings(),
	}
}
