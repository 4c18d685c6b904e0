package gitclone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrFetch indicates the candidate branch could not be cloned. The pipeline
// aborts before any test execution.
var ErrFetch = errors.New("repository fetch failed")

// Workspace is an isolated directory holding a single-branch clone. It is
// exclusively owned by one pipeline run and must be released via Cleanup on
// every exit path.
type Workspace struct {
	Dir string
}

// Cleanup removes the workspace directory and everything beneath it.
func (w *Workspace) Cleanup() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	return os.RemoveAll(w.Dir)
}

// Fetcher produces isolated working directories from candidate branches.
type Fetcher interface {
	Fetch(ctx context.Context, cloneURL, branch string) (*Workspace, error)
}

// Config groups fetcher configuration values.
type Config struct {
	// Root is the parent directory for clone workspaces. Defaults to the
	// system temp directory.
	Root string
	// MaxAttempts bounds clone retries on network failure.
	MaxAttempts int
	Logger      zerolog.Logger
}

// GitFetcher clones candidate branches with go-git.
type GitFetcher struct {
	cfg    Config
	logger zerolog.Logger
}

// NewGitFetcher constructs a fetcher rooted at cfg.Root.
func NewGitFetcher(cfg Config) *GitFetcher {
	if cfg.Root == "" {
		cfg.Root = os.TempDir()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	return &GitFetcher{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "git_fetcher").Logger(),
	}
}

// Fetch clones exactly the named branch into a uniquely named directory.
// No other refs are fetched. On failure the partial clone is removed before
// the error is returned.
func (f *GitFetcher) Fetch(ctx context.Context, cloneURL, branch string) (*Workspace, error) {
	dir := filepath.Join(f.cfg.Root, "submission-"+uuid.NewString())

	options := &git.CloneOptions{
		URL:           cloneURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
	}

	attempt := func() error {
		if err := os.RemoveAll(dir); err != nil {
			return backoff.Permanent(err)
		}
		_, err := git.PlainCloneContext(ctx, dir, false, options)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(f.cfg.MaxAttempts-1)), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		if cleanupErr := os.RemoveAll(dir); cleanupErr != nil {
			f.logger.Error().Err(cleanupErr).Str("dir", dir).Msg("failed to remove workspace after clone failure")
		}
		return nil, fmt.Errorf("%w: clone %s (branch %s): %v", ErrFetch, cloneURL, branch, err)
	}

	f.logger.Debug().Str("dir", dir).Str("branch", branch).Msg("branch cloned")

	return &Workspace{Dir: dir}, nil
}
