package commands

import (
	"time"

	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// FindRootDirectories walks searchRoot depth-first looking for directories named
// after targetNames. Each name is collected once, in discovery order, and the walk
// stops as soon as every name has been found. It reports false when none is found.
func FindRootDirectories(fs afero.Fs, searchRoot string, targetNames []string, opts WalkOptions) ([]string, bool) {
	opts = opts.withDefaults()
	remaining := make(map[string]struct{}, len(targetNames))
	for _, name := range targetNames {
		remaining[name] = struct{}{}
	}

	var roots []string
	stack := []walkItem{{entry: entities.FileSystemEntry{Path: searchRoot, IsDir: true}}}
	for len(stack) > 0 && len(remaining) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.depth > 0 {
			if _, wanted := remaining[current.entry.Name()]; wanted {
				roots = append(roots, current.entry.Path)
				delete(remaining, current.entry.Name())
			}
		}
		if current.depth >= opts.MaxDepth {
			continue
		}

		var children []walkItem
		for _, entry := range readEntries(fs, current.entry.Path, opts.Exclude) {
			if entry.IsDir {
				children = append(children, walkItem{entry: entry, depth: current.depth + 1})
			}
		}
		stack = pushReversed(stack, children)
	}

	return roots, len(roots) > 0
}

// FindArtifact walks searchRoot depth-first for the first regular file named name.
func FindArtifact(fs afero.Fs, searchRoot, name string, opts WalkOptions) (string, bool) {
	opts = opts.withDefaults()
	stack := []walkItem{{entry: entities.FileSystemEntry{Path: searchRoot, IsDir: true}}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.depth >= opts.MaxDepth {
			continue
		}

		var children []walkItem
		for _, entry := range readEntries(fs, current.entry.Path, opts.Exclude) {
			if !entry.IsDir && entry.Name() == name {
				return entry.Path, true
			}
			if entry.IsDir {
				children = append(children, walkItem{entry: entry, depth: current.depth + 1})
			}
		}
		stack = pushReversed(stack, children)
	}
	return "", false
}

// ArtifactModTime returns the modification time of the build artifact.
func ArtifactModTime(fs afero.Fs, path string) (time.Time, bool) {
	info, err := fs.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
