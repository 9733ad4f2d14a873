package repositories

import "iter"

// DependencyExtractor maps the contents of a source file to candidate paths of
// the files or directories it depends on.
type DependencyExtractor interface {
	// Name returns the extractor identifier (e.g. "namespace", "msbuild").
	Name() string

	// Extract yields candidate paths lazily. Candidates may repeat and need not
	// exist. An unreadable file yields nothing.
	Extract(path string) iter.Seq[string]
}
