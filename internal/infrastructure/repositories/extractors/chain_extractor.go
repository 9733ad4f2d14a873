package extractors

import (
	"iter"
	"strings"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// ChainExtractor yields the candidates of several extractors, in order.
type ChainExtractor struct {
	extractors []repositories.DependencyExtractor
}

var _ repositories.DependencyExtractor = (*ChainExtractor)(nil)

// NewChainExtractor combines the given extractors.
func NewChainExtractor(extractors ...repositories.DependencyExtractor) *ChainExtractor {
	return &ChainExtractor{extractors: extractors}
}

func (it *ChainExtractor) Name() string {
	names := make([]string, 0, len(it.extractors))
	for _, extractor := range it.extractors {
		names = append(names, extractor.Name())
	}
	return strings.Join(names, "+")
}

func (it *ChainExtractor) Extract(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, extractor := range it.extractors {
			for candidate := range extractor.Extract(path) {
				if !yield(candidate) {
					return
				}
			}
		}
	}
}
