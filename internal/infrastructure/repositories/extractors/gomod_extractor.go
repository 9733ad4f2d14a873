package extractors

import (
	"bufio"
	"iter"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// GoModExtractorName identifies the Go module extractor in the configuration.
const GoModExtractorName = "gomod"

const (
	goModFile   = "go.mod"
	goSourceExt = ".go"
)

// GoModExtractor follows imports of packages inside the repository's own Go
// module to their directories. The module path is read from <base>/go.mod once.
type GoModExtractor struct {
	fs      afero.Fs
	baseDir string

	once    sync.Once
	imports *regexp.Regexp
}

var _ repositories.DependencyExtractor = (*GoModExtractor)(nil)

// NewGoModExtractor creates a Go module extractor rooted at baseDir.
func NewGoModExtractor(fs afero.Fs, _ *entities.Settings, baseDir string) (repositories.DependencyExtractor, error) {
	return &GoModExtractor{fs: fs, baseDir: baseDir}, nil
}

func (it *GoModExtractor) Name() string { return GoModExtractorName }

func (it *GoModExtractor) Extract(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if filepath.Ext(path) != goSourceExt {
			return
		}

		pattern := it.importPattern()
		if pattern == nil {
			return
		}

		file, err := it.fs.Open(path)
		if err != nil {
			logger.Debugf("Skipping imports of %s: %v", path, err)
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			for _, match := range pattern.FindAllStringSubmatch(scanner.Text(), -1) {
				if !yield(filepath.Join(it.baseDir, filepath.FromSlash(match[1]))) {
					return
				}
			}
		}
	}
}

// importPattern matches quoted import paths below the module path, or nil
// when go.mod is missing or has no module directive.
func (it *GoModExtractor) importPattern() *regexp.Regexp {
	it.once.Do(func() {
		goModPath := filepath.Join(it.baseDir, goModFile)
		data, err := afero.ReadFile(it.fs, goModPath)
		if err != nil {
			logger.Debugf("No Go module at %s: %v", goModPath, err)
			return
		}

		parsed, err := modfile.ParseLax(goModPath, data, nil)
		if err != nil || parsed.Module == nil {
			logger.Debugf("Failed to read module path from %s: %v", goModPath, err)
			return
		}

		modulePath := strings.TrimSpace(parsed.Module.Mod.Path)
		it.imports = regexp.MustCompile(`"` + regexp.QuoteMeta(modulePath) + `/([^"]+)"`)
	})
	return it.imports
}
