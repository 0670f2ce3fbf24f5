// Package autocommit records the learned pattern file in a git
// repository after each flush. Everything here is best-effort: a data
// directory that is not a repository, a commit that finds nothing new,
// or a rejected push never stops the daemon.
package autocommit

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/patternd/patternd/internal/config"
	"github.com/patternd/patternd/internal/errors"
	"github.com/patternd/patternd/internal/logger"
)

// Hook stages, commits, and optionally pushes the pattern file using
// the git settings from the config.
type Hook struct {
	cfg config.GitConfig
	log logger.Logger
}

// New returns a commit hook for the given git settings.
func New(cfg config.GitConfig, log logger.Logger) *Hook {
	if log == nil {
		log = logger.Default()
	}
	return &Hook{cfg: cfg, log: log}
}

// Commit stages the pattern file and commits it when its content
// changed, then pushes if a remote is configured. It is a no-op when
// auto-commit is disabled or the file does not live inside a git
// repository. A rejected push is logged, not returned; the commit
// already succeeded locally.
func (h *Hook) Commit(ctx context.Context, path string) error {
	if !h.cfg.Enabled || !h.cfg.AutoCommit {
		return nil
	}

	if _, err := exec.LookPath("git"); err != nil {
		return errors.WrapWithCode(err, errors.ErrGit,
			"Git is not installed",
			"Install git or disable git.auto_commit in the config")
	}

	dir := filepath.Dir(path)
	if _, err := gitOutput(ctx, dir, "rev-parse", "--show-toplevel"); err != nil {
		h.log.Debug("%s is not inside a git repository, skipping auto-commit", dir)
		return nil
	}

	if err := gitRun(ctx, dir, "add", "--", path); err != nil {
		return errors.WrapWithCode(err, errors.ErrGit,
			"Failed to stage the pattern file",
			"Check that the data directory repository is writable")
	}

	status, err := gitOutput(ctx, dir, "status", "--porcelain", "--", path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrGit,
			"Failed to check git status",
			"Check that the data directory repository is healthy")
	}
	if status == "" {
		h.log.Debug("Pattern file unchanged, nothing to commit")
		return nil
	}

	if err := gitRun(ctx, dir, "commit", "-m", h.cfg.CommitMessage); err != nil {
		return errors.WrapWithCode(err, errors.ErrGit,
			"Failed to commit the pattern file",
			"Check the repository state with git -C "+dir+" status")
	}
	h.log.Info("Committed pattern changes")

	if h.cfg.Remote != "" {
		if err := gitRun(ctx, dir, "push", h.cfg.Remote, h.cfg.Branch); err != nil {
			h.log.Debug("Could not push pattern changes: %v", err)
		}
	}
	return nil
}

// gitOutput runs a git command in dir and returns trimmed stdout.
func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// gitRun runs a git command in dir, folding any output into the error.
func gitRun(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("git %s: %s", args[0], msg)
		}
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}
