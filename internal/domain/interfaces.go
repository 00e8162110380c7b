// Package domain defines the core value types and interfaces for convent-commits.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrInvalidArgument indicates a missing or out-of-range argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRepositoryNotFound indicates the fixture repository could not be opened or created.
	ErrRepositoryNotFound = errors.New("fixture repository not available at specified path")

	// ErrEmptyHistory indicates the fixture repository has no commits.
	ErrEmptyHistory = errors.New("fixture repository has no commits")

	// ErrHistoryMismatch indicates commits read back differ from those written.
	ErrHistoryMismatch = errors.New("fixture history does not match written commits")

	// ErrUnsupportedFormat indicates an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// ArgumentError identifies the parameter that failed validation.
// It unwraps to ErrInvalidArgument.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidArgument, e.Param)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Param, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// RandomProvider is the single source of randomness for message generation.
// Implementations need not be safe for concurrent use.
type RandomProvider interface {
	// Word returns one random word.
	Word() string

	// Phrase returns a short random phrase of one or more words.
	Phrase() string

	// BoundedInt returns a uniformly drawn integer in [0, max].
	// Returns an ArgumentError if max is negative.
	BoundedInt(max int) (int, error)
}

// PickOne returns one of items chosen through p.
// Returns an ArgumentError if items is empty.
func PickOne[T any](p RandomProvider, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, &ArgumentError{Param: "items", Reason: "must not be empty"}
	}
	i, err := p.BoundedInt(len(items) - 1)
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// ScopeCreator creates commit scopes.
type ScopeCreator interface {
	Create() CommitScope
}

// DescriptionCreator creates commit descriptions.
type DescriptionCreator interface {
	Create() CommitDescription
}

// MessageFactory assembles conventional commit messages.
type MessageFactory interface {
	// CreateCommitMessage builds a message for the given type and options.
	// Returns an ArgumentError if the type is absent or options is nil.
	CreateCommitMessage(commitType CommitType, options *MessageOptions) (string, error)
}

// FixtureGenerator produces batches of fixtures.
type FixtureGenerator interface {
	CreateMany(ctx context.Context, req BatchRequest) ([]Fixture, error)
}

// FixtureRepository writes generated messages as commits and reads them back.
type FixtureRepository interface {
	// CommitAll creates one commit per message, in order.
	// Returns the commit SHAs oldest first.
	CommitAll(ctx context.Context, messages []string) ([]string, error)

	// History walks the commit graph from HEAD, newest first, up to depth commits.
	History(ctx context.Context, depth int) ([]CommitRecord, error)

	// Close releases any resources held by the repository.
	Close() error
}

// OutputWriter writes generated fixtures to an output destination.
type OutputWriter interface {
	WriteFixtures(fixtures []Fixture) error
}
