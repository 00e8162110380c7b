package usecases

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/convent-commits/internal/adapters/random"
	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

const (
	scopePattern          = `\([a-z0-9-]+\)`
	descriptionPattern    = `.+`
	issuePattern          = `Closes #\d+`
	newLinePattern        = `\n`
	breakingChangePattern = `BREAKING CHANGE: .+`
)

// propertySeeds is the number of seeded providers each property is checked against.
const propertySeeds = 100

func forEachSeed(t *testing.T, fn func(t *testing.T, f *CommitMessageFactory, ct domain.CommitType)) {
	t.Helper()
	for seed := uint64(1); seed <= propertySeeds; seed++ {
		p := random.New(seed)
		ct, err := PickCommitType(p, domain.BuiltinCommitTypes())
		require.NoError(t, err)
		fn(t, NewCommitMessageFactory(p, &mockLogger{}), ct)
	}
}

func TestCreateCommitMessage_Properties(t *testing.T) {
	tests := []struct {
		name    string
		options domain.MessageOptions
		pattern func(ct string) string
	}{
		{
			name:    "defaults include type and description only",
			options: domain.MessageOptions{},
			pattern: func(ct string) string { return `^` + ct + `: ` + descriptionPattern + `$` },
		},
		{
			name:    "scope",
			options: domain.MessageOptions{HasScope: true},
			pattern: func(ct string) string { return `^` + ct + scopePattern + `: ` + descriptionPattern + `$` },
		},
		{
			name:    "body",
			options: domain.MessageOptions{HasBody: true},
			pattern: func(ct string) string {
				return `^` + ct + `: ` + descriptionPattern + newLinePattern + `.+$`
			},
		},
		{
			name:    "issue",
			options: domain.MessageOptions{HasIssue: true},
			pattern: func(ct string) string {
				return `^` + ct + `: ` + descriptionPattern + newLinePattern + issuePattern + `$`
			},
		},
		{
			name:    "breaking change",
			options: domain.MessageOptions{HasBreakingChange: true},
			pattern: func(ct string) string {
				return `^` + ct + `!: ` + descriptionPattern + newLinePattern + breakingChangePattern + `$`
			},
		},
		{
			name:    "breaking change and scope put the bang after the scope",
			options: domain.MessageOptions{HasScope: true, HasBreakingChange: true},
			pattern: func(ct string) string {
				return `^` + ct + scopePattern + `!: ` + descriptionPattern + newLinePattern + breakingChangePattern + `$`
			},
		},
		{
			name:    "issue followed by breaking change",
			options: domain.MessageOptions{HasIssue: true, HasBreakingChange: true},
			pattern: func(ct string) string {
				return `^` + ct + `!: ` + descriptionPattern + newLinePattern +
					issuePattern + newLinePattern + breakingChangePattern + `$`
			},
		},
		{
			name:    "everything",
			options: domain.MessageOptions{HasScope: true, HasBody: true, HasIssue: true, HasBreakingChange: true},
			pattern: func(ct string) string {
				return `^` + ct + scopePattern + `!: ` + descriptionPattern + newLinePattern + `.+` + newLinePattern +
					issuePattern + newLinePattern + breakingChangePattern + `$`
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachSeed(t, func(t *testing.T, f *CommitMessageFactory, ct domain.CommitType) {
				opts := tt.options

				actual, err := f.CreateCommitMessage(ct, &opts)

				require.NoError(t, err)
				assert.Regexp(t, regexp.MustCompile(tt.pattern(regexp.QuoteMeta(ct.String()))), actual)
			})
		})
	}
}

func TestCreateDefaultCommitMessage(t *testing.T) {
	p := &scriptedProvider{phrases: []string{"add fixture generator"}}
	f := NewCommitMessageFactory(p, &mockLogger{})

	actual, err := f.CreateDefaultCommitMessage(domain.Feature())

	require.NoError(t, err)
	assert.Equal(t, "feat: add fixture generator", actual)
}

func TestCreateCommitMessage_ExactAssembly(t *testing.T) {
	tests := []struct {
		name     string
		ct       domain.CommitType
		options  domain.MessageOptions
		provider *scriptedProvider
		want     string
	}{
		{
			name:     "minimal",
			ct:       domain.Chore(),
			provider: &scriptedProvider{phrases: []string{"tidy up"}},
			want:     "chore: tidy up",
		},
		{
			name:    "scope with bang and no footer issue",
			ct:      domain.Fix(),
			options: domain.MessageOptions{HasScope: true, HasBreakingChange: true},
			provider: &scriptedProvider{
				ints:    []int{1},
				words:   []string{"Api", "Core"},
				phrases: []string{"drop v1 routes", "v1 routes are gone"},
			},
			want: "fix(api-core)!: drop v1 routes\nBREAKING CHANGE: v1 routes are gone",
		},
		{
			name:    "body only",
			ct:      domain.Feature(),
			options: domain.MessageOptions{HasBody: true},
			provider: &scriptedProvider{
				phrases: []string{"add export", "Exports CSV files."},
			},
			want: "feat: add export\nExports CSV files.",
		},
		{
			name:    "issue only",
			ct:      domain.Fix(),
			options: domain.MessageOptions{HasIssue: true},
			provider: &scriptedProvider{
				ints:    []int{4242},
				phrases: []string{"handle nil"},
			},
			want: "fix: handle nil\nCloses #4242",
		},
		{
			name:    "all parts in order",
			ct:      domain.Feature(),
			options: domain.MessageOptions{HasScope: true, HasBody: true, HasIssue: true, HasBreakingChange: true},
			provider: &scriptedProvider{
				ints:    []int{0, 17},
				words:   []string{"Parser"},
				phrases: []string{"new grammar", "body text", "old grammar removed"},
			},
			want: "feat(parser)!: new grammar\nbody text\nCloses #17\nBREAKING CHANGE: old grammar removed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := NewCommitMessageFactory(tt.provider, &mockLogger{})
			opts := tt.options

			// Act
			actual, err := f.CreateCommitMessage(tt.ct, &opts)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, actual)
		})
	}
}

func TestCreateCommitMessage_DrawOrder(t *testing.T) {
	p := &scriptedProvider{ints: []int{0, 5}}
	f := NewCommitMessageFactory(p, &mockLogger{})

	_, err := f.CreateCommitMessage(domain.Feature(), &domain.MessageOptions{
		HasScope: true, HasBody: true, HasIssue: true, HasBreakingChange: true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"int", "word", "phrase", "phrase", "int", "phrase"}, p.calls)
	assert.Equal(t, []int{2, domain.MaxIssueNumber}, p.intMaxes)
}

func TestCreateCommitMessage_IssueNumberRange(t *testing.T) {
	issue := regexp.MustCompile(`Closes #(\d+)$`)

	forEachSeed(t, func(t *testing.T, f *CommitMessageFactory, ct domain.CommitType) {
		actual, err := f.CreateCommitMessage(ct, &domain.MessageOptions{HasIssue: true})
		require.NoError(t, err)

		m := issue.FindStringSubmatch(actual)
		require.Len(t, m, 2)
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, domain.MaxIssueNumber)
	})
}

func TestCreateCommitMessage_CustomType(t *testing.T) {
	ct, err := domain.NewCustomCommitType("docs")
	require.NoError(t, err)
	p := &scriptedProvider{phrases: []string{"describe options"}}

	actual, err := NewCommitMessageFactory(p, &mockLogger{}).CreateCommitMessage(ct, domain.DefaultMessageOptions())

	require.NoError(t, err)
	assert.Equal(t, "docs: describe options", actual)
}

func TestCreateCommitMessage_InvalidArguments(t *testing.T) {
	tests := []struct {
		name      string
		ct        domain.CommitType
		options   *domain.MessageOptions
		wantParam string
	}{
		{
			name:      "missing commit type",
			ct:        domain.CommitType{},
			options:   domain.DefaultMessageOptions(),
			wantParam: "commitType",
		},
		{
			name:      "missing options",
			ct:        domain.Fix(),
			options:   nil,
			wantParam: "options",
		},
		{
			name:      "both missing reports commit type",
			ct:        domain.CommitType{},
			options:   nil,
			wantParam: "commitType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedProvider{}
			f := NewCommitMessageFactory(p, &mockLogger{})

			actual, err := f.CreateCommitMessage(tt.ct, tt.options)

			require.Error(t, err)
			assert.Empty(t, actual)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)

			var argErr *domain.ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, tt.wantParam, argErr.Param)
			assert.Empty(t, p.calls, "no randomness should be consumed")
		})
	}
}

func TestCreateCommitMessage_IndependentPhraseDraws(t *testing.T) {
	p := &scriptedProvider{phrases: []string{"desc", "body", "breaking"}}
	f := NewCommitMessageFactory(p, &mockLogger{})

	actual, err := f.CreateCommitMessage(domain.Fix(), &domain.MessageOptions{HasBody: true, HasBreakingChange: true})

	require.NoError(t, err)
	lines := strings.Split(actual, domain.NewLine)
	require.Len(t, lines, 3)
	assert.Equal(t, "fix!: desc", lines[0])
	assert.Equal(t, "body", lines[1])
	assert.Equal(t, "BREAKING CHANGE: breaking", lines[2])
}

type stubScope struct{ value string }

func (s stubScope) Create() domain.CommitScope { return domain.NewCommitScope(s.value) }

type stubDescription struct{ value string }

func (s stubDescription) Create() domain.CommitDescription {
	return domain.NewCommitDescription(s.value)
}

func TestNewCommitMessageFactory_WithOptions(t *testing.T) {
	f := NewCommitMessageFactory(&scriptedProvider{}, &mockLogger{},
		WithScopeCreator(stubScope{value: "deps"}),
		WithDescriptionCreator(stubDescription{value: "bump go-git"}),
	)

	actual, err := f.CreateCommitMessage(domain.Chore(), &domain.MessageOptions{HasScope: true})

	require.NoError(t, err)
	assert.Equal(t, "chore(deps): bump go-git", actual)
}

func TestCreateCommitMessage_LogsAtDebug(t *testing.T) {
	log := &mockLogger{}
	f := NewCommitMessageFactory(&scriptedProvider{}, log)

	_, err := f.CreateDefaultCommitMessage(domain.Feature())

	require.NoError(t, err)
	assert.Equal(t, []string{"created commit message"}, log.debugMsgs)
	assert.Empty(t, log.infoMsgs)
}
