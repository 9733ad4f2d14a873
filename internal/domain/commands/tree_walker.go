package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
)

// WalkOptions bounds and filters every filesystem traversal.
type WalkOptions struct {
	MaxDepth int
	Exclude  []string // glob patterns matched against the entry name and its slash path
}

// withDefaults substitutes entities.DefaultMaxDepth for a non-positive depth.
func (o WalkOptions) withDefaults() WalkOptions {
	if o.MaxDepth <= 0 {
		o.MaxDepth = entities.DefaultMaxDepth
	}
	return o
}

type walkItem struct {
	entry      entities.FileSystemEntry
	depth      int
	dependency bool // reached through an extracted dependency rather than a directory listing
}

// readEntries lists the traversable entries of dir, sorted by name.
func readEntries(fs afero.Fs, dir string, exclude []string) []entities.FileSystemEntry {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		logger.Debugf("Failed to list %s: %v", dir, err)
		return nil
	}

	entries := make([]entities.FileSystemEntry, 0, len(infos))
	for _, info := range infos {
		if !isTraversable(info) {
			continue
		}

		path := filepath.Join(dir, info.Name())
		if isExcluded(path, exclude) {
			logger.Debugf("Excluded %s", path)
			continue
		}
		entries = append(entries, entities.FileSystemEntry{Path: path, IsDir: info.IsDir()})
	}
	return entries
}

// statEntry classifies a single path without following symbolic links.
func statEntry(fs afero.Fs, path string) (entities.FileSystemEntry, bool) {
	var (
		info os.FileInfo
		err  error
	)
	if lstater, ok := fs.(afero.Lstater); ok {
		info, _, err = lstater.LstatIfPossible(path)
	} else {
		info, err = fs.Stat(path)
	}
	if err != nil || !isTraversable(info) {
		return entities.FileSystemEntry{}, false
	}
	return entities.FileSystemEntry{Path: path, IsDir: info.IsDir()}, true
}

// isTraversable rejects dot entries, symbolic links and special files.
func isTraversable(info os.FileInfo) bool {
	if strings.HasPrefix(info.Name(), ".") || info.Mode()&os.ModeSymlink != 0 {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}

func isExcluded(path string, patterns []string) bool {
	name := filepath.Base(path)
	slashPath := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, slashPath); err == nil && matched {
			return true
		}
	}
	return false
}

func pushReversed(stack []walkItem, items []walkItem) []walkItem {
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, items[i])
	}
	return stack
}
