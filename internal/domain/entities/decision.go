package entities

import (
	"fmt"
	"time"
)

// Reason identifies which heuristic signalled a rebuild.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonArtifactOutdated Reason = "artifact-outdated"
	ReasonUnpushedCommit   Reason = "unpushed-commit"
	ReasonStagedDependency Reason = "staged-dependency"
)

// Decision is the verdict of a change detection run.
type Decision struct {
	Rebuild    bool
	Reason     Reason
	Path       string    // entry that triggered the rebuild
	CommitTime time.Time // commit time of the root entry being scanned
}

// NewRebuildDecision creates a positive decision.
func NewRebuildDecision(reason Reason, path string, commitTime time.Time) Decision {
	return Decision{
		Rebuild:    true,
		Reason:     reason,
		Path:       path,
		CommitTime: commitTime,
	}
}

func (it Decision) String() string {
	if !it.Rebuild {
		return "no rebuild needed"
	}
	return fmt.Sprintf("rebuild needed (%s): %s", it.Reason, it.Path)
}
