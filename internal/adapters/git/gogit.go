// Package git provides a fixture repository that records generated messages as commits.
// This package implements the domain.FixtureRepository interface using go-git/v5.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// FixtureFile is the worktree file appended to by every fixture commit.
const FixtureFile = "FIXTURES"

// DefaultHistoryDepth is the number of commits History walks when depth is not positive.
const DefaultHistoryDepth = 25

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// Author identifies who fixture commits are attributed to.
type Author struct {
	Name  string
	Email string
}

// GoGitRepository implements domain.FixtureRepository using go-git/v5.
type GoGitRepository struct {
	repo   *git.Repository
	path   string
	author Author
	logger Logger
	now    func() time.Time
}

// NewMemoryRepository creates an empty repository held entirely in memory.
func NewMemoryRepository(author Author, log Logger) (*GoGitRepository, error) {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		return nil, fmt.Errorf("failed to init in-memory repository: %w", err)
	}

	return &GoGitRepository{
		repo:   repo,
		path:   ":memory:",
		author: author,
		logger: log,
		now:    time.Now,
	}, nil
}

// NewDiskRepository opens the repository at path, initializing one if none exists.
// Returns domain.ErrRepositoryNotFound if the path can be neither opened nor initialized.
func NewDiskRepository(path string, author Author, log Logger) (*GoGitRepository, error) {
	repo, err := git.PlainInit(path, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrRepositoryNotFound, path, err)
	}

	return &GoGitRepository{
		repo:   repo,
		path:   path,
		author: author,
		logger: log,
		now:    time.Now,
	}, nil
}

// CommitAll creates one commit per message on the current branch.
// Each commit appends its message to FixtureFile. Returns the commit SHAs oldest first.
func (r *GoGitRepository) CommitAll(ctx context.Context, messages []string) ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	shas := make([]string, 0, len(messages))
	for i, msg := range messages {
		select {
		case <-ctx.Done():
			return shas, ctx.Err()
		default:
		}

		if err := appendFixture(wt, msg); err != nil {
			return shas, err
		}
		if _, err := wt.Add(FixtureFile); err != nil {
			return shas, fmt.Errorf("failed to stage %s: %w", FixtureFile, err)
		}

		hash, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  r.author.Name,
				Email: r.author.Email,
				When:  r.now(),
			},
			AllowEmptyCommits: true,
		})
		if err != nil {
			return shas, fmt.Errorf("failed to commit fixture %d: %w", i, err)
		}
		shas = append(shas, hash.String())
	}

	r.logger.Debug(ctx, "committed fixtures", map[string]interface{}{
		"path":    r.path,
		"commits": len(shas),
	})

	return shas, nil
}

func appendFixture(wt *git.Worktree, msg string) error {
	f, err := wt.Filesystem.OpenFile(FixtureFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", FixtureFile, err)
	}
	if _, err := f.Write([]byte(msg + domain.NewLine)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", FixtureFile, err)
	}
	return f.Close()
}

// History walks first parents from HEAD, returning commits newest first, up to depth.
// Returns domain.ErrEmptyHistory if the repository has no commits.
func (r *GoGitRepository) History(ctx context.Context, depth int) ([]domain.CommitRecord, error) {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}

	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrEmptyHistory
		}
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit object for HEAD: %w", err)
	}

	var records []domain.CommitRecord
	for len(records) < depth {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		records = append(records, domain.CommitRecord{
			SHA:     commit.Hash.String(),
			Message: commit.Message,
		})

		if commit.NumParents() == 0 {
			break
		}
		commit, err = commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to walk commit history: %w", err)
		}
	}

	if !head.Name().IsBranch() {
		r.logger.Warn(ctx, "HEAD is detached", map[string]interface{}{
			"head_sha": head.Hash().String(),
			"path":     r.path,
		})
	}

	return records, nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}
