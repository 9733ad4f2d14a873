package repositories

import (
	"fmt"
	"slices"
	"strings"

	domainRepos "github.com/rios0rios0/rebuildgate/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories/git"
)

// VersionControlFactory is a constructor function that creates a VersionControlRepository for a repository directory.
type VersionControlFactory func(repoDir string) domainRepos.VersionControlRepository

// VersionControlRegistry manages all registered version-control backends.
type VersionControlRegistry struct {
	backends map[string]VersionControlFactory
}

// NewVersionControlRegistry creates an empty version-control registry.
func NewVersionControlRegistry() *VersionControlRegistry {
	return &VersionControlRegistry{
		backends: make(map[string]VersionControlFactory),
	}
}

// Register adds a backend factory under the given name (e.g. "cli").
func (r *VersionControlRegistry) Register(name string, factory VersionControlFactory) {
	r.backends[name] = factory
}

// Get returns a backend for repoDir. A positive cacheSize memoizes commit-time lookups.
func (r *VersionControlRegistry) Get(name, repoDir string, cacheSize int) (domainRepos.VersionControlRepository, error) {
	factory, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown git backend: %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}

	backend := factory(repoDir)
	if cacheSize <= 0 {
		return backend, nil
	}
	return gitRepo.NewCachedVersionControlRepository(backend, cacheSize)
}

// Names returns the sorted list of registered backend names.
func (r *VersionControlRegistry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
