package driving

import (
	"context"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// ProgressFunc receives periodic snapshots of a running training job.
// It is called from a monitor goroutine, never from a training worker.
type ProgressFunc func(domain.TrainingProgress)

// TrainingService builds vocabularies and trains embedding models.
type TrainingService interface {
	// BuildVocabulary counts tokens, applies min-count filtering and builds
	// the negative-sampling table. It allocates no vectors.
	BuildVocabulary(ctx context.Context, corpus *domain.Corpus, params domain.Hyperparameters) (*domain.Vocabulary, domain.TrainingStats, error)

	// Train runs a full training job. The returned model is complete or nil;
	// a failed run never yields a partial model. onProgress may be nil.
	Train(ctx context.Context, corpus *domain.Corpus, params domain.Hyperparameters, onProgress ProgressFunc) (*domain.Model, domain.TrainingStats, error)
}
