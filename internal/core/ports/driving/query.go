package driving

import (
	"context"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// QueryService answers semantic queries against the live model.
// All methods are read-only and safe for concurrent use.
type QueryService interface {
	// Similarity returns the cosine similarity of two words in [-1, 1].
	Similarity(ctx context.Context, w1, w2 string) (float64, error)

	// NearestNeighbors returns up to topN words closest to word, excluding word.
	NearestNeighbors(ctx context.Context, word string, topN int) ([]domain.Neighbor, error)

	// Analogy ranks words against the sum of positive minus negative vectors.
	Analogy(ctx context.Context, query domain.AnalogyQuery) ([]domain.Neighbor, error)

	// VocabularySize returns V for the live model.
	VocabularySize(ctx context.Context) (int, error)

	// WordExists reports whether word is in the vocabulary.
	WordExists(ctx context.Context, word string) (bool, error)

	// Vocabulary returns the first limit words in index order.
	Vocabulary(ctx context.Context, limit int) ([]string, error)

	// Vector returns a copy of the raw vector for word.
	Vector(ctx context.Context, word string) ([]float32, error)

	// Health reports serving status. It never fails.
	Health(ctx context.Context) domain.Health
}
