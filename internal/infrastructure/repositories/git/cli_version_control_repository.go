package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/rebuildgate/internal/domain/entities"
	"github.com/rios0rios0/rebuildgate/internal/domain/repositories"
)

const checkoutMarker = "checkout"

// commandRunner executes git with the given arguments inside dir.
type commandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// CLIVersionControlRepository answers version-control queries by running the git executable.
type CLIVersionControlRepository struct {
	repoDir string
	run     commandRunner
}

var _ repositories.VersionControlRepository = (*CLIVersionControlRepository)(nil)

// NewCLIVersionControlRepository creates a repository rooted at repoDir.
func NewCLIVersionControlRepository(repoDir string) repositories.VersionControlRepository {
	return &CLIVersionControlRepository{repoDir: repoDir, run: runGit}
}

// runGit runs `git <args>` in dir and returns its standard output.
func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// LastCommitTime runs `git log -n 1 --date=iso --pretty=format:%cd -- <path>`.
func (it *CLIVersionControlRepository) LastCommitTime(ctx context.Context, path string) (time.Time, bool) {
	output, err := it.run(ctx, it.repoDir, "log", "-n", "1", "--date=iso", "--pretty=format:%cd", "--", path)
	if err != nil {
		logger.Debugf("No commit information for %s: %v", path, err)
		return time.Time{}, false
	}
	return entities.ParseTimestamp(firstLine(output))
}

// LastPushTime takes the newest checkout entry of `git reflog --date=iso`.
func (it *CLIVersionControlRepository) LastPushTime(ctx context.Context) (time.Time, bool) {
	output, err := it.run(ctx, it.repoDir, "reflog", "--date=iso")
	if err != nil {
		logger.Debugf("Failed to read reflog: %v", err)
		return time.Time{}, false
	}

	for _, line := range lines(output) {
		if strings.Contains(line, checkoutMarker) {
			return entities.ParseTimestamp(line)
		}
	}
	return time.Time{}, false
}

// StagedFiles runs `git diff --name-only --cached <remote>/<branch>`.
func (it *CLIVersionControlRepository) StagedFiles(ctx context.Context, remote, branch string) ([]string, error) {
	if remote == "" || branch == "" {
		return nil, errors.New("remote and branch are required to compute staged files")
	}

	output, err := it.run(ctx, it.repoDir, "diff", "--name-only", "--cached", remote+"/"+branch)
	if err != nil {
		return nil, err
	}
	return lines(output), nil
}

// CurrentBranch runs `git rev-parse --abbrev-ref HEAD`.
func (it *CLIVersionControlRepository) CurrentBranch(ctx context.Context) (string, error) {
	output, err := it.run(ctx, it.repoDir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return firstLine(output), nil
}

// HooksDirectory runs `git rev-parse --git-path hooks`, which honours core.hooksPath.
func (it *CLIVersionControlRepository) HooksDirectory(ctx context.Context) (string, error) {
	output, err := it.run(ctx, it.repoDir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}

	dir := firstLine(output)
	if dir == "" {
		return "", errors.New("git did not report a hooks directory")
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(it.repoDir, dir)
	}
	return dir, nil
}

// lines splits output into trimmed, non-blank lines.
func lines(output []byte) []string {
	var result []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			result = append(result, line)
		}
	}
	return result
}

func firstLine(output []byte) string {
	if all := lines(output); len(all) > 0 {
		return all[0]
	}
	return ""
}
