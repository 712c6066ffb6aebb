package driven

import (
	"context"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// ModelArtifactStore serialises models to and from persistent artifacts.
type ModelArtifactStore interface {
	// Write persists model at dest. A partially written artifact is never
	// left at dest.
	Write(ctx context.Context, model *domain.Model, dest string) error

	// Read loads and validates the artifact at src. Format or shape problems
	// are reported as domain.ErrCorruptArtifact.
	Read(ctx context.Context, src string) (*domain.Model, error)
}
