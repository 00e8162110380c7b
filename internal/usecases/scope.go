package usecases

import (
	"strings"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// maxScopeWords is the largest number of words joined into one scope.
const maxScopeWords = 3

// ScopeGenerator produces lower-case, hyphen-joined scopes from random words.
type ScopeGenerator struct {
	provider domain.RandomProvider
}

// NewScopeGenerator creates a ScopeGenerator drawing from the given provider.
func NewScopeGenerator(provider domain.RandomProvider) *ScopeGenerator {
	return &ScopeGenerator{provider: provider}
}

// Create draws one to three words and joins their cleaned forms with "-".
//
// A word made only of symbols cleans to the empty string and is still joined,
// so the scope can contain leading, trailing or doubled hyphens.
func (g *ScopeGenerator) Create() domain.CommitScope {
	// maxScopeWords-1 is a non-negative constant, BoundedInt cannot fail here.
	extra, _ := g.provider.BoundedInt(maxScopeWords - 1)

	tokens := make([]string, 1+extra)
	for i := range tokens {
		tokens[i] = cleanScopeToken(g.provider.Word())
	}

	return domain.NewCommitScope(strings.Join(tokens, "-"))
}

// cleanScopeToken keeps the text before the first space, drops every rune
// that is not an ASCII letter or digit and lower-cases the rest.
func cleanScopeToken(word string) string {
	word, _, _ = strings.Cut(word, " ")

	var sb strings.Builder
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		}
	}
	return sb.String()
}
