package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/adapters/driven/artifact"
	"github.com/custodia-labs/wordspace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/services"
)

// newTestPorts wires real services over in-memory stores with a small
// installed model.
func newTestPorts(t *testing.T) (*Ports, *services.ModelStore) {
	t.Helper()

	vocab, err := domain.NewVocabulary(
		[]string{"king", "queen", "man", "woman"},
		[]int64{40, 30, 20, 10},
		domain.DefaultSampleExponent,
	)
	require.NoError(t, err)
	vectors, err := domain.NewMatrixFrom(4, 2, []float32{
		1, 0.2,
		0.9, 0.4,
		0.3, -1,
		0.2, -0.8,
	})
	require.NoError(t, err)
	model, err := domain.NewModel("b3e1c6f0-2d4a-4c8e-9f17-6a5d0e2c8b41", time.Unix(1700000000, 0),
		vocab, vectors, domain.DefaultHyperparameters())
	require.NoError(t, err)

	models := services.NewModelStore(artifact.NewStore(), nil)
	require.NoError(t, models.Install(model))

	return &Ports{
		Query:    services.NewQueryService(models, nil),
		Models:   models,
		Corpus:   services.NewCorpusService(memory.NewCorpusStore(), nil),
		Settings: services.NewSettingsService(memory.NewConfigStore(), t.TempDir()),
	}, models
}
