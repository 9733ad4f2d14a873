//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"iter"
	"slices"

	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// StubDependencyExtractor implements repositories.DependencyExtractor from a fixed table.
type StubDependencyExtractor struct {
	ExtractorName string
	Dependencies  map[string][]string // file path -> candidate paths
	Extracted     []string            // spy: files that were extracted
}

var _ repositories.DependencyExtractor = (*StubDependencyExtractor)(nil)

func (s *StubDependencyExtractor) Name() string {
	if s.ExtractorName == "" {
		return "stub"
	}
	return s.ExtractorName
}

func (s *StubDependencyExtractor) Extract(path string) iter.Seq[string] {
	s.Extracted = append(s.Extracted, path)
	return slices.Values(s.Dependencies[path])
}
