// Package random provides domain.RandomProvider implementations backed by gofakeit.
package random

import (
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// maxPhraseWords is the largest number of words in a generated phrase.
const maxPhraseWords = 3

// Provider draws words, phrases and integers from a gofakeit Faker.
// It is not safe for concurrent use; wrap it with NewLocked when shared.
type Provider struct {
	faker *gofakeit.Faker
}

// New creates a Provider. A zero seed draws a random seed; any other
// seed produces a repeatable sequence.
func New(seed uint64) *Provider {
	return &Provider{faker: gofakeit.New(seed)}
}

// Word returns one random word.
func (p *Provider) Word() string {
	return p.faker.Word()
}

// Phrase returns between one and three random words separated by single spaces.
func (p *Provider) Phrase() string {
	n := 1 + p.faker.Number(0, maxPhraseWords-1)
	words := make([]string, n)
	for i := range words {
		words[i] = p.faker.Word()
	}
	return strings.Join(words, " ")
}

// BoundedInt returns a uniformly drawn integer in [0, max].
func (p *Provider) BoundedInt(max int) (int, error) {
	if max < 0 {
		return 0, &domain.ArgumentError{Param: "max", Reason: "must not be negative"}
	}
	return p.faker.Number(0, max), nil
}

// Locked serializes access to a wrapped provider.
type Locked struct {
	mu    sync.Mutex
	inner domain.RandomProvider
}

// NewLocked wraps inner so it can be shared between goroutines.
func NewLocked(inner domain.RandomProvider) *Locked {
	return &Locked{inner: inner}
}

// Word returns one random word from the wrapped provider.
func (l *Locked) Word() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Word()
}

// Phrase returns a random phrase from the wrapped provider.
func (l *Locked) Phrase() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Phrase()
}

// BoundedInt returns a uniformly drawn integer in [0, max] from the wrapped provider.
func (l *Locked) BoundedInt(max int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.BoundedInt(max)
}
