package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/rebuildgate/internal/infrastructure/repositories"
)

// Inspection holds the inputs gathered for change detection and its outcome.
type Inspection struct {
	BaseDirectory string
	Branch        string
	Roots         []string
	ArtifactPath  string
	ArtifactTime  *time.Time
	PushTime      *time.Time
	Staged        entities.ChangeSet
	Extractor     string

	// Aborted is set when a required input is missing; detection did not run.
	Aborted     bool
	AbortReason string

	Decision entities.Decision
}

// Inspector gathers the change detection inputs and runs the ChangeDetector.
type Inspector struct {
	fs                afero.Fs
	vcsRegistry       *infraRepos.VersionControlRegistry
	extractorRegistry *infraRepos.ExtractorRegistry
}

// NewInspector creates a new Inspector.
func NewInspector(
	fs afero.Fs,
	vcsRegistry *infraRepos.VersionControlRegistry,
	extractorRegistry *infraRepos.ExtractorRegistry,
) *Inspector {
	return &Inspector{
		fs:                fs,
		vcsRegistry:       vcsRegistry,
		extractorRegistry: extractorRegistry,
	}
}

// Inspect resolves roots, artifact, staged files and push time for the request,
// then runs the detector. Missing roots (or a missing artifact when it is
// required) abort the inspection without error: the gate fails open.
func (it *Inspector) Inspect(
	ctx context.Context,
	settings *entities.Settings,
	request entities.PushRequest,
	workingDir string,
) (*Inspection, error) {
	baseDir := settings.BaseDirectory(workingDir)
	inspection := &Inspection{BaseDirectory: baseDir}

	vcs, err := it.vcsRegistry.Get(settings.Git.Backend, baseDir, settings.Git.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize git backend: %w", err)
	}

	extractor, err := it.extractorRegistry.Get(it.fs, settings, baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependency extractor: %w", err)
	}
	inspection.Extractor = extractor.Name()

	walk := WalkOptions{MaxDepth: settings.MaxDepth, Exclude: settings.Exclude}

	roots, found := FindRootDirectories(it.fs, baseDir, settings.RootDirectories, walk)
	if !found {
		inspection.abort(fmt.Sprintf("no directory named %v found under %s", settings.RootDirectories, baseDir))
		return inspection, nil
	}
	inspection.Roots = roots
	logger.Debugf("Root directories: %v", roots)

	if artifactPath, ok := FindArtifact(it.fs, baseDir, settings.ArtifactName, walk); ok {
		inspection.ArtifactPath = artifactPath
		if modTime, statOK := ArtifactModTime(it.fs, artifactPath); statOK {
			inspection.ArtifactTime = &modTime
		}
	} else if settings.RequireArtifact {
		inspection.abort(fmt.Sprintf("build artifact %q not found under %s", settings.ArtifactName, baseDir))
		return inspection, nil
	}

	inspection.Branch = request.RemoteBranch()
	if request.RemoteRef == "" {
		if branch, branchErr := vcs.CurrentBranch(ctx); branchErr == nil {
			inspection.Branch = branch
		} else {
			logger.Warnf("Failed to detect current branch: %v", branchErr)
		}
	}

	staged, err := vcs.StagedFiles(ctx, request.Remote, inspection.Branch)
	if err != nil {
		logger.Warnf("Failed to list staged files, assuming none: %v", err)
		staged = nil
	}
	inspection.Staged = entities.NewChangeSet(staged...)

	if pushTime, ok := vcs.LastPushTime(ctx); ok {
		inspection.PushTime = &pushTime
	}

	detector := NewChangeDetector(it.fs, vcs, extractor, walk)
	inspection.Decision = detector.NeedsRebuild(
		ctx, roots, inspection.ArtifactTime, inspection.PushTime, inspection.Staged,
	)
	return inspection, nil
}

func (it *Inspection) abort(reason string) {
	it.Aborted = true
	it.AbortReason = reason
	logger.Warnf("Skipping change detection: %s", reason)
}
