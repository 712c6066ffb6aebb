package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	neighbors  []domain.Neighbor
	similarity float64
	words      []string
	size       int
	exists     bool
	health     domain.Health
	err        error

	lastTopN    int
	lastAnalogy domain.AnalogyQuery
	lastLimit   int
}

func (m *mockQueryService) Similarity(_ context.Context, _, _ string) (float64, error) {
	return m.similarity, m.err
}

func (m *mockQueryService) NearestNeighbors(_ context.Context, _ string, topN int) ([]domain.Neighbor, error) {
	m.lastTopN = topN
	return m.neighbors, m.err
}

func (m *mockQueryService) Analogy(_ context.Context, q domain.AnalogyQuery) ([]domain.Neighbor, error) {
	m.lastAnalogy = q
	return m.neighbors, m.err
}

func (m *mockQueryService) VocabularySize(_ context.Context) (int, error) {
	return m.size, m.err
}

func (m *mockQueryService) WordExists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.err
}

func (m *mockQueryService) Vocabulary(_ context.Context, limit int) ([]string, error) {
	m.lastLimit = limit
	return m.words, m.err
}

func (m *mockQueryService) Vector(_ context.Context, _ string) ([]float32, error) {
	return nil, m.err
}

func (m *mockQueryService) Health(_ context.Context) domain.Health {
	return m.health
}

// mockModelService is a mock implementation of driving.ModelService.
type mockModelService struct {
	model *domain.Model
}

func (m *mockModelService) Current() (*domain.Model, error) {
	if m.model == nil {
		return nil, domain.ErrModelNotLoaded
	}
	return m.model, nil
}

func (m *mockModelService) Load(_ context.Context, _ string) (*domain.Model, error) {
	return m.model, nil
}

func (m *mockModelService) Save(_ context.Context, _ *domain.Model, _ string) error { return nil }
func (m *mockModelService) Install(model *domain.Model) error                       { m.model = model; return nil }
func (m *mockModelService) Unload()                                                 { m.model = nil }
func (m *mockModelService) Subscribe(_ func(*domain.Model))                         {}

func newTestModel(t *testing.T) *domain.Model {
	t.Helper()
	vocab, err := domain.NewVocabulary([]string{"king", "queen", "man"}, []int64{30, 20, 10}, domain.DefaultSampleExponent)
	require.NoError(t, err)
	vectors, err := domain.NewMatrixFrom(3, 2, []float32{1, 0, 0.5, 0.5, 0, 1})
	require.NoError(t, err)
	model, err := domain.NewModel("0d9b3c2a-5e41-4f7b-8a62-91c0e4d7b3f5", time.Unix(1700000000, 0), vocab, vectors, domain.DefaultHyperparameters())
	require.NoError(t, err)
	return model
}
