package driving

import (
	"context"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// ModelService owns the single live model.
type ModelService interface {
	// Current returns the live model or domain.ErrModelNotLoaded.
	Current() (*domain.Model, error)

	// Load reads an artifact and swaps it in. On failure the live model is unchanged.
	Load(ctx context.Context, source string) (*domain.Model, error)

	// Save writes a model artifact to dest.
	Save(ctx context.Context, model *domain.Model, dest string) error

	// Install publishes an in-memory model, typically one fresh from training.
	Install(model *domain.Model) error

	// Unload drops the live model.
	Unload()

	// Subscribe registers fn to be called after every swap with the new model
	// (nil after Unload).
	Subscribe(fn func(*domain.Model))
}
