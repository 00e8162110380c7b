// Package domain defines the core value types and interfaces for convent-commits.
package domain

import (
	"strings"
)

// NewLine separates the header, body and footer lines of a generated message.
const NewLine = "\n"

// MaxIssueNumber is the inclusive upper bound for generated "Closes #N" references.
const MaxIssueNumber = 10_000

// CommitTypeKind identifies which variant a CommitType holds.
type CommitTypeKind int

const (
	// KindUnset is the zero value and marks an absent commit type.
	KindUnset CommitTypeKind = iota
	// KindFeature is the "feat" type.
	KindFeature
	// KindFix is the "fix" type.
	KindFix
	// KindChore is the "chore" type.
	KindChore
	// KindCustom is a caller-defined type carrying its own name.
	KindCustom
)

// CommitType is the conventional-commit type tag, e.g. "feat".
// The zero value is an absent type and is rejected by the message factory.
type CommitType struct {
	kind CommitTypeKind
	name string
}

// Feature returns the commit type for adding a feature.
func Feature() CommitType { return CommitType{kind: KindFeature, name: "feat"} }

// Fix returns the commit type for fixing a bug.
func Fix() CommitType { return CommitType{kind: KindFix, name: "fix"} }

// Chore returns the commit type for performing a chore.
func Chore() CommitType { return CommitType{kind: KindChore, name: "chore"} }

// NewCustomCommitType creates a caller-defined commit type.
// Returns an ArgumentError for an empty or whitespace-only name.
func NewCustomCommitType(name string) (CommitType, error) {
	if strings.TrimSpace(name) == "" {
		return CommitType{}, &ArgumentError{Param: "name", Reason: "must not be empty"}
	}
	return CommitType{kind: KindCustom, name: name}, nil
}

// ParseCommitType maps a name to a built-in type, or a custom one when it is not built in.
func ParseCommitType(name string) (CommitType, error) {
	for _, ct := range BuiltinCommitTypes() {
		if ct.name == name {
			return ct, nil
		}
	}
	return NewCustomCommitType(name)
}

// BuiltinCommitTypes returns the well-known commit types.
func BuiltinCommitTypes() []CommitType {
	return []CommitType{Feature(), Fix(), Chore()}
}

// Kind reports the variant of the commit type.
func (c CommitType) Kind() CommitTypeKind { return c.kind }

// Name returns the type's wire text.
func (c CommitType) Name() string { return c.name }

// IsZero reports whether the commit type is absent.
func (c CommitType) IsZero() bool { return c.kind == KindUnset }

// String returns the canonical wire text of the commit type.
func (c CommitType) String() string { return c.name }

// CommitScope is the optional parenthesized qualifier of a message header.
type CommitScope struct {
	value string
}

// NewCommitScope wraps an already normalized scope value.
func NewCommitScope(value string) CommitScope { return CommitScope{value: value} }

// Value returns the scope text.
func (s CommitScope) Value() string { return s.value }

// String returns the scope text.
func (s CommitScope) String() string { return s.value }

// CommitDescription is the mandatory summary following the header colon.
type CommitDescription struct {
	value string
}

// NewCommitDescription wraps a description value verbatim.
func NewCommitDescription(value string) CommitDescription {
	return CommitDescription{value: value}
}

// Value returns the description text.
func (d CommitDescription) Value() string { return d.value }

// String returns the description text.
func (d CommitDescription) String() string { return d.value }

// MessageOptions selects which optional parts a generated message includes.
type MessageOptions struct {
	HasScope          bool `json:"has_scope" yaml:"has_scope"`
	HasBody           bool `json:"has_body" yaml:"has_body"`
	HasIssue          bool `json:"has_issue" yaml:"has_issue"`
	HasBreakingChange bool `json:"has_breaking_change" yaml:"has_breaking_change"`
}

// DefaultMessageOptions returns options producing the minimal "<type>: <description>" message.
func DefaultMessageOptions() *MessageOptions {
	return &MessageOptions{}
}

// HasFooter reports whether a footer (issue or breaking change) is included.
func (o MessageOptions) HasFooter() bool {
	return o.HasIssue || o.HasBreakingChange
}

// OptionProbabilities holds the chance, in [0, 1], that each option is switched on
// when options are drawn at random.
type OptionProbabilities struct {
	Scope    float64 `koanf:"scope" validate:"gte=0,lte=1"`
	Body     float64 `koanf:"body" validate:"gte=0,lte=1"`
	Issue    float64 `koanf:"issue" validate:"gte=0,lte=1"`
	Breaking float64 `koanf:"breaking" validate:"gte=0,lte=1"`
}

// BatchRequest describes a batch of fixtures to generate.
type BatchRequest struct {
	// Count is the number of messages to create. Negative counts are rejected.
	Count int

	// Type fixes the commit type for every message. When zero, types are
	// picked from Types.
	Type CommitType

	// Types is the candidate set used when Type is zero.
	// Defaults to BuiltinCommitTypes when empty.
	Types []CommitType

	// Options fixes the options for every message. When nil, options are
	// drawn per message using Probabilities.
	Options *MessageOptions

	// Probabilities drives random option selection.
	Probabilities OptionProbabilities
}

// Fixture is one generated message together with the inputs that produced it.
type Fixture struct {
	Type    string         `json:"type" yaml:"type"`
	Options MessageOptions `json:"options" yaml:"options"`
	Message string         `json:"message" yaml:"message"`
}

// CommitRecord is a commit read back from a fixture repository.
type CommitRecord struct {
	// SHA is the full 40-character commit hash.
	SHA string

	// Message is the full commit message.
	Message string
}
