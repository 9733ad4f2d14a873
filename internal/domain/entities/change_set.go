package entities

import (
	"sort"
	"strings"
)

// ChangeSet is the set of file basenames staged for a push.
type ChangeSet struct {
	names map[string]struct{}
}

// NewChangeSet keeps the basename of every non-blank path.
func NewChangeSet(paths ...string) ChangeSet {
	names := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		segments := strings.Split(trimmed, "/")
		if base := segments[len(segments)-1]; base != "" {
			names[base] = struct{}{}
		}
	}
	return ChangeSet{names: names}
}

// Contains reports whether the basename is staged.
func (it ChangeSet) Contains(name string) bool {
	_, ok := it.names[name]
	return ok
}

// Len returns the number of distinct staged basenames.
func (it ChangeSet) Len() int {
	return len(it.names)
}

// Names returns the staged basenames in sorted order.
func (it ChangeSet) Names() []string {
	result := make([]string, 0, len(it.names))
	for name := range it.names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
