package usecases

import (
	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// DescriptionGenerator produces commit descriptions from random phrases.
type DescriptionGenerator struct {
	provider domain.RandomProvider
}

// NewDescriptionGenerator creates a DescriptionGenerator drawing from the given provider.
func NewDescriptionGenerator(provider domain.RandomProvider) *DescriptionGenerator {
	return &DescriptionGenerator{provider: provider}
}

// Create wraps one random phrase verbatim.
func (g *DescriptionGenerator) Create() domain.CommitDescription {
	return domain.NewCommitDescription(g.provider.Phrase())
}
