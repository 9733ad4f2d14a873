package extractors

import (
	"iter"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// MSBuildExtractorName identifies the MSBuild extractor in the configuration.
const MSBuildExtractorName = "msbuild"

const projectReferenceXPath = "//ProjectReference"

//nolint:gochecknoglobals // static lookup table
var projectExtensions = map[string]bool{
	".csproj":  true,
	".fsproj":  true,
	".vbproj":  true,
	".proj":    true,
	".props":   true,
	".targets": true,
}

// MSBuildExtractor follows <ProjectReference Include="..."/> items of MSBuild
// project files to the directories of the referenced projects.
// Files that are not MSBuild projects yield nothing.
type MSBuildExtractor struct {
	fs afero.Fs
}

var _ repositories.DependencyExtractor = (*MSBuildExtractor)(nil)

// NewMSBuildExtractor creates an MSBuild extractor.
func NewMSBuildExtractor(fs afero.Fs, _ *entities.Settings, _ string) (repositories.DependencyExtractor, error) {
	return &MSBuildExtractor{fs: fs}, nil
}

func (it *MSBuildExtractor) Name() string { return MSBuildExtractorName }

func (it *MSBuildExtractor) Extract(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !projectExtensions[strings.ToLower(filepath.Ext(path))] {
			return
		}

		file, err := it.fs.Open(path)
		if err != nil {
			logger.Debugf("Skipping project references of %s: %v", path, err)
			return
		}
		defer file.Close()

		doc, err := xmlquery.Parse(file)
		if err != nil {
			logger.Debugf("Failed to parse %s as XML: %v", path, err)
			return
		}

		nodes, err := xmlquery.QueryAll(doc, projectReferenceXPath)
		if err != nil {
			logger.Debugf("Project reference query failed on %s: %v", path, err)
			return
		}

		projectDir := filepath.Dir(path)
		for _, node := range nodes {
			include := strings.TrimSpace(node.SelectAttr("Include"))
			if include == "" {
				continue
			}

			// MSBuild paths use backslashes regardless of platform
			referenced := filepath.FromSlash(strings.ReplaceAll(include, `\`, "/"))
			if !filepath.IsAbs(referenced) {
				referenced = filepath.Join(projectDir, referenced)
			}

			if !yield(filepath.Dir(referenced)) {
				return
			}
		}
	}
}
