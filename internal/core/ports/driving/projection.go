package driving

import (
	"context"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// ProjectionService reduces word vectors to a few dimensions for plotting.
type ProjectionService interface {
	// Project runs PCA over the given words, or over the limit most frequent
	// words when words is empty, and returns coordinates on the leading principal axes.
	Project(ctx context.Context, words []string, limit, components int) ([]domain.ProjectedWord, error)
}
