package repositories

import (
	"github.com/spf13/afero"
	"go.uber.org/dig"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/rebuildgate/internal/domain/repositories"
	buildRepo "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories/build"
	"github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories/extractors"
	gitRepo "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories/git"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(afero.NewOsFs); err != nil {
		return err
	}

	// Register version-control registry with all backends
	if err := container.Provide(func() *VersionControlRegistry {
		reg := NewVersionControlRegistry()
		reg.Register(entities.GitBackendCLI, gitRepo.NewCLIVersionControlRepository)
		reg.Register(entities.GitBackendNative, gitRepo.NewNativeVersionControlRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register extractor registry with all dependency extractors
	if err := container.Provide(func() *ExtractorRegistry {
		reg := NewExtractorRegistry()
		reg.Register(extractors.NamespaceExtractorName, extractors.NewNamespaceExtractor)
		reg.Register(extractors.MSBuildExtractorName, extractors.NewMSBuildExtractor)
		reg.Register(extractors.GoModExtractorName, extractors.NewGoModExtractor)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.BuildRepository {
		return buildRepo.NewShellBuildRepository()
	}); err != nil {
		return err
	}

	return nil
}
