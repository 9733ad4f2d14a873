package entities

import "path/filepath"

// FileSystemEntry is a path classified as a directory or a regular file.
type FileSystemEntry struct {
	Path  string
	IsDir bool
}

// Name returns the last element of the entry path.
func (it FileSystemEntry) Name() string {
	return filepath.Base(it.Path)
}
