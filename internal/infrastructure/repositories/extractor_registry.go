package repositories

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/rebuildgate/internal/domain/repositories"
	"github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories/extractors"
)

// ExtractorFactory is a constructor function that creates a DependencyExtractor
// from the settings and the repository base directory.
type ExtractorFactory func(
	fs afero.Fs,
	settings *entities.Settings,
	baseDir string,
) (domainRepos.DependencyExtractor, error)

// ExtractorRegistry manages all registered dependency extractor implementations.
type ExtractorRegistry struct {
	extractors map[string]ExtractorFactory
}

// NewExtractorRegistry creates an empty extractor registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		extractors: make(map[string]ExtractorFactory),
	}
}

// Register adds an extractor factory under the given name (e.g. "namespace").
func (r *ExtractorRegistry) Register(name string, factory ExtractorFactory) {
	r.extractors[name] = factory
}

// Get builds the extractors listed in the settings, chained in the configured order.
func (r *ExtractorRegistry) Get(
	fs afero.Fs,
	settings *entities.Settings,
	baseDir string,
) (domainRepos.DependencyExtractor, error) {
	names := settings.Dependencies.Extractors
	if len(names) == 0 {
		return nil, errors.New("no dependency extractor configured")
	}

	built := make([]domainRepos.DependencyExtractor, 0, len(names))
	for _, name := range names {
		factory, ok := r.extractors[name]
		if !ok {
			return nil, fmt.Errorf("unknown dependency extractor: %q (available: %s)", name, strings.Join(r.Names(), ", "))
		}

		extractor, err := factory(fs, settings, baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create %q extractor: %w", name, err)
		}
		built = append(built, extractor)
	}

	if len(built) == 1 {
		return built[0], nil
	}
	return extractors.NewChainExtractor(built...), nil
}

// Names returns the sorted list of registered extractor names.
func (r *ExtractorRegistry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
