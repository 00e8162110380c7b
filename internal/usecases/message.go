// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Footer prefixes.
const (
	issuePrefix          = "Closes #"
	breakingChangePrefix = "BREAKING CHANGE: "
)

// CommitMessageFactory creates commit messages in the Conventional Commits format.
type CommitMessageFactory struct {
	provider     domain.RandomProvider
	scopes       domain.ScopeCreator
	descriptions domain.DescriptionCreator
	logger       Logger
}

// FactoryOption customizes a CommitMessageFactory.
type FactoryOption func(*CommitMessageFactory)

// WithScopeCreator replaces the default scope generator.
func WithScopeCreator(c domain.ScopeCreator) FactoryOption {
	return func(f *CommitMessageFactory) { f.scopes = c }
}

// WithDescriptionCreator replaces the default description generator.
func WithDescriptionCreator(c domain.DescriptionCreator) FactoryOption {
	return func(f *CommitMessageFactory) { f.descriptions = c }
}

// NewCommitMessageFactory creates a factory whose scope, description, body,
// issue and breaking-change text are all drawn from provider.
func NewCommitMessageFactory(
	provider domain.RandomProvider,
	log Logger,
	opts ...FactoryOption,
) *CommitMessageFactory {
	f := &CommitMessageFactory{
		provider:     provider,
		scopes:       NewScopeGenerator(provider),
		descriptions: NewDescriptionGenerator(provider),
		logger:       log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateDefaultCommitMessage creates a "<type>: <description>" message.
func (f *CommitMessageFactory) CreateDefaultCommitMessage(commitType domain.CommitType) (string, error) {
	return f.CreateCommitMessage(commitType, domain.DefaultMessageOptions())
}

// CreateCommitMessage creates a message for commitType with the parts selected by options.
//
// The header is "<type>[(<scope>)][!]: <description>". The body follows on its own
// line, then the footer: the issue reference, then the breaking-change note.
//
// Returns an ArgumentError naming "commitType" if the type is absent, or "options"
// if options is nil.
func (f *CommitMessageFactory) CreateCommitMessage(
	commitType domain.CommitType,
	options *domain.MessageOptions,
) (string, error) {
	if commitType.IsZero() {
		return "", &domain.ArgumentError{Param: "commitType"}
	}
	if options == nil {
		return "", &domain.ArgumentError{Param: "options"}
	}

	var sb strings.Builder

	sb.WriteString(commitType.String())
	f.maybeAppendScope(options, &sb)
	if options.HasBreakingChange {
		sb.WriteString("!")
	}
	f.appendDescription(&sb)
	f.maybeAppendBody(options, &sb)
	f.maybeAppendFooter(options, &sb)

	message := sb.String()

	f.logger.Debug(context.Background(), "created commit message", map[string]interface{}{
		"type":            commitType.String(),
		"has_scope":       options.HasScope,
		"has_body":        options.HasBody,
		"has_issue":       options.HasIssue,
		"breaking_change": options.HasBreakingChange,
		"length":          len(message),
	})

	return message, nil
}

func (f *CommitMessageFactory) maybeAppendScope(options *domain.MessageOptions, sb *strings.Builder) {
	if !options.HasScope {
		return
	}
	sb.WriteString("(")
	sb.WriteString(f.scopes.Create().String())
	sb.WriteString(")")
}

func (f *CommitMessageFactory) appendDescription(sb *strings.Builder) {
	sb.WriteString(": ")
	sb.WriteString(f.descriptions.Create().String())
}

func (f *CommitMessageFactory) maybeAppendBody(options *domain.MessageOptions, sb *strings.Builder) {
	if !options.HasBody {
		return
	}
	sb.WriteString(domain.NewLine)
	sb.WriteString(f.provider.Phrase())
}

func (f *CommitMessageFactory) maybeAppendFooter(options *domain.MessageOptions, sb *strings.Builder) {
	if !options.HasFooter() {
		return
	}
	sb.WriteString(domain.NewLine)

	if options.HasIssue {
		// MaxIssueNumber is a positive constant, BoundedInt cannot fail here.
		issue, _ := f.provider.BoundedInt(domain.MaxIssueNumber)
		sb.WriteString(issuePrefix)
		sb.WriteString(strconv.Itoa(issue))
	}

	if options.HasIssue && options.HasBreakingChange {
		sb.WriteString(domain.NewLine)
	}

	if options.HasBreakingChange {
		sb.WriteString(breakingChangePrefix)
		sb.WriteString(f.provider.Phrase())
	}
}
