package usecases

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// MaxBatchSize caps the number of fixtures a single batch may request.
const MaxBatchSize = 10_000

// probabilityResolution is the number of buckets a probability is drawn over.
const probabilityResolution = 1000

var validate = validator.New()

// FixtureGenerator produces batches of commit message fixtures.
type FixtureGenerator struct {
	provider domain.RandomProvider
	factory  domain.MessageFactory
	logger   Logger
}

// NewFixtureGenerator creates a FixtureGenerator drawing types and options from
// provider and building messages with factory.
func NewFixtureGenerator(
	provider domain.RandomProvider,
	factory domain.MessageFactory,
	log Logger,
) *FixtureGenerator {
	return &FixtureGenerator{
		provider: provider,
		factory:  factory,
		logger:   log,
	}
}

// CreateMany creates req.Count fixtures.
//
// A fixed req.Type or req.Options applies to every fixture; otherwise the type is
// picked from req.Types and the options are drawn from req.Probabilities per fixture.
// Returns an ArgumentError for a negative or oversized count or invalid probabilities.
func (g *FixtureGenerator) CreateMany(ctx context.Context, req domain.BatchRequest) ([]domain.Fixture, error) {
	if req.Count < 0 {
		return nil, &domain.ArgumentError{Param: "count", Reason: "must not be negative"}
	}
	if req.Count > MaxBatchSize {
		return nil, &domain.ArgumentError{Param: "count", Reason: fmt.Sprintf("must not exceed %d", MaxBatchSize)}
	}
	if err := validate.Struct(req.Probabilities); err != nil {
		return nil, &domain.ArgumentError{Param: "probabilities", Reason: err.Error()}
	}

	types := req.Types
	if len(types) == 0 {
		types = domain.BuiltinCommitTypes()
	}

	batchID := uuid.NewString()
	g.logger.Info(ctx, "generating fixtures", map[string]interface{}{
		"batch_id":      batchID,
		"count":         req.Count,
		"fixed_type":    req.Type.String(),
		"fixed_options": req.Options != nil,
	})

	fixtures := make([]domain.Fixture, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fixture, err := g.createOne(req, types)
		if err != nil {
			return nil, fmt.Errorf("failed to create fixture %d: %w", i, err)
		}
		fixtures = append(fixtures, fixture)
	}

	g.logger.Debug(ctx, "generated fixtures", map[string]interface{}{
		"batch_id": batchID,
		"count":    len(fixtures),
	})

	return fixtures, nil
}

func (g *FixtureGenerator) createOne(req domain.BatchRequest, types []domain.CommitType) (domain.Fixture, error) {
	commitType := req.Type
	if commitType.IsZero() {
		picked, err := PickCommitType(g.provider, types)
		if err != nil {
			return domain.Fixture{}, err
		}
		commitType = picked
	}

	options := req.Options
	if options == nil {
		drawn, err := RandomOptions(g.provider, req.Probabilities)
		if err != nil {
			return domain.Fixture{}, err
		}
		options = drawn
	}

	message, err := g.factory.CreateCommitMessage(commitType, options)
	if err != nil {
		return domain.Fixture{}, err
	}

	return domain.Fixture{
		Type:    commitType.String(),
		Options: *options,
		Message: message,
	}, nil
}

// PickCommitType returns one of types chosen through provider.
func PickCommitType(provider domain.RandomProvider, types []domain.CommitType) (domain.CommitType, error) {
	return domain.PickOne(provider, types)
}

// RandomOptions draws each option independently, switching it on with the
// matching probability.
func RandomOptions(provider domain.RandomProvider, probs domain.OptionProbabilities) (*domain.MessageOptions, error) {
	var opts domain.MessageOptions
	toggles := []struct {
		p   float64
		dst *bool
	}{
		{probs.Scope, &opts.HasScope},
		{probs.Body, &opts.HasBody},
		{probs.Issue, &opts.HasIssue},
		{probs.Breaking, &opts.HasBreakingChange},
	}

	for _, t := range toggles {
		n, err := provider.BoundedInt(probabilityResolution - 1)
		if err != nil {
			return nil, err
		}
		*t.dst = n < int(t.p*probabilityResolution)
	}

	return &opts, nil
}
