package extractors

import (
	"bufio"
	"fmt"
	"iter"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

const (
	// NamespaceExtractorName identifies the namespace extractor in the configuration.
	NamespaceExtractorName = "namespace"

	namespaceSeparator = "."
	statementEnd       = ";"
)

// NamespaceExtractor follows import-like lines naming a namespace under a fixed
// marker, e.g. `using EdgeZoneRP.Models.Orders;`, and maps the namespace to a
// directory below the configured base path: <base>/Models/Orders.
type NamespaceExtractor struct {
	fs       afero.Fs
	keyword  string
	marker   string
	pattern  *regexp.Regexp
	basePath string
}

var _ repositories.DependencyExtractor = (*NamespaceExtractor)(nil)

// NewNamespaceExtractor creates a namespace extractor from the settings.
// Relative base paths are resolved against baseDir.
func NewNamespaceExtractor(
	fs afero.Fs,
	settings *entities.Settings,
	baseDir string,
) (repositories.DependencyExtractor, error) {
	pattern, err := regexp.Compile(settings.DependencyPattern())
	if err != nil {
		return nil, fmt.Errorf("invalid dependency pattern: %w", err)
	}

	basePath := filepath.FromSlash(settings.Dependencies.BasePath)
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(baseDir, basePath)
	}

	return &NamespaceExtractor{
		fs:       fs,
		keyword:  settings.Dependencies.ImportKeyword,
		marker:   settings.Dependencies.NamespaceMarker,
		pattern:  pattern,
		basePath: basePath,
	}, nil
}

func (it *NamespaceExtractor) Name() string { return NamespaceExtractorName }

// Extract yields one candidate path per matching import line, in file order.
func (it *NamespaceExtractor) Extract(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		file, err := it.fs.Open(path)
		if err != nil {
			logger.Debugf("Skipping dependencies of %s: %v", path, err)
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.Contains(line, it.keyword) || !strings.Contains(line, it.marker) {
				continue
			}

			match := it.pattern.FindString(line)
			if match == "" {
				continue
			}

			if !yield(it.toPath(match)) {
				return
			}
		}
		if scanErr := scanner.Err(); scanErr != nil {
			logger.Debugf("Stopped reading dependencies of %s: %v", path, scanErr)
		}
	}
}

// toPath strips the marker and the statement terminator and turns the
// remaining namespace separators into path separators.
func (it *NamespaceExtractor) toPath(match string) string {
	if idx := strings.Index(match, it.marker); idx >= 0 {
		match = match[idx+len(it.marker):]
	}
	match = strings.TrimSuffix(strings.TrimSpace(match), statementEnd)

	segments := []string{it.basePath}
	for _, segment := range strings.Split(match, namespaceSeparator) {
		if segment = strings.TrimSpace(segment); segment != "" {
			segments = append(segments, segment)
		}
	}
	return filepath.Join(segments...)
}
