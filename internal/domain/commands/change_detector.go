package commands

import (
	"context"
	"iter"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

// ChangeDetector decides whether the configured roots changed in a way that
// requires a rebuild before pushing.
type ChangeDetector struct {
	fs        afero.Fs
	vcs       repositories.VersionControlRepository
	extractor repositories.DependencyExtractor
	options   WalkOptions
}

// NewChangeDetector creates a detector. A nil extractor disables dependency following.
func NewChangeDetector(
	fs afero.Fs,
	vcs repositories.VersionControlRepository,
	extractor repositories.DependencyExtractor,
	options WalkOptions,
) *ChangeDetector {
	return &ChangeDetector{
		fs:        fs,
		vcs:       vcs,
		extractor: extractor,
		options:   options.withDefaults(),
	}
}

// NeedsRebuild scans the immediate entries of every root, in order, and stops at
// the first positive signal:
//
//  1. entries without commit information are skipped;
//  2. a commit newer than the build artifact requires a rebuild;
//  3. a commit newer than the last push requires a rebuild;
//  4. without a push time, an entry requires a rebuild when it, anything below
//     it, or anything it depends on is staged for the push.
func (it *ChangeDetector) NeedsRebuild(
	ctx context.Context,
	roots []string,
	artifactTime, pushTime *time.Time,
	staged entities.ChangeSet,
) entities.Decision {
	for _, root := range roots {
		for _, entry := range readEntries(it.fs, root, it.options.Exclude) {
			if err := ctx.Err(); err != nil {
				logger.Warnf("Change detection interrupted: %v", err)
				return entities.Decision{}
			}

			commitTime, found := it.vcs.LastCommitTime(ctx, entry.Path)
			if !found {
				logger.Debugf("No commit information for %s, skipping", entry.Path)
				continue
			}

			if artifactTime != nil && commitTime.After(*artifactTime) {
				return entities.NewRebuildDecision(entities.ReasonArtifactOutdated, entry.Path, commitTime)
			}

			if pushTime != nil {
				if commitTime.After(*pushTime) {
					return entities.NewRebuildDecision(entities.ReasonUnpushedCommit, entry.Path, commitTime)
				}
				continue
			}

			if staged.Len() == 0 {
				continue
			}

			if path, reason, ok := it.findStagedChange(ctx, entry, artifactTime, staged); ok {
				return entities.NewRebuildDecision(reason, path, commitTime)
			}
		}
	}

	return entities.Decision{}
}

// ResolveDependencies yields the candidate paths the file depends on.
func (it *ChangeDetector) ResolveDependencies(path string) iter.Seq[string] {
	if it.extractor == nil {
		return func(func(string) bool) {}
	}
	return it.extractor.Extract(path)
}

// findStagedChange traverses start, its descendants and its dependencies with an
// explicit stack. Every path is visited at most once, so dependency cycles end.
func (it *ChangeDetector) findStagedChange(
	ctx context.Context,
	start entities.FileSystemEntry,
	artifactTime *time.Time,
	staged entities.ChangeSet,
) (string, entities.Reason, bool) {
	visited := make(map[string]struct{})
	stack := []walkItem{{entry: start}}

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return "", entities.ReasonNone, false
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := filepath.Clean(current.entry.Path)
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		if current.dependency && artifactTime != nil {
			commitTime, found := it.vcs.LastCommitTime(ctx, current.entry.Path)
			if found && commitTime.After(*artifactTime) {
				return current.entry.Path, entities.ReasonArtifactOutdated, true
			}
		}

		if !current.entry.IsDir && staged.Contains(current.entry.Name()) {
			return current.entry.Path, entities.ReasonStagedDependency, true
		}

		if current.depth >= it.options.MaxDepth {
			logger.Warnf("Maximum depth %d reached at %s, not following further", it.options.MaxDepth, current.entry.Path)
			continue
		}

		stack = pushReversed(stack, it.next(current))
	}

	return "", entities.ReasonNone, false
}

// next returns the children of a directory or the existing dependencies of a file.
func (it *ChangeDetector) next(current walkItem) []walkItem {
	var items []walkItem
	if current.entry.IsDir {
		for _, entry := range readEntries(it.fs, current.entry.Path, it.options.Exclude) {
			items = append(items, walkItem{entry: entry, depth: current.depth + 1})
		}
		return items
	}

	for candidate := range it.ResolveDependencies(current.entry.Path) {
		entry, ok := statEntry(it.fs, candidate)
		if !ok || isExcluded(entry.Path, it.options.Exclude) {
			logger.Debugf("Dependency %s of %s is missing or excluded", candidate, current.entry.Path)
			continue
		}
		items = append(items, walkItem{entry: entry, depth: current.depth + 1, dependency: true})
	}
	return items
}
