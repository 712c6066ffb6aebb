package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// --- Mock implementations ---

// mockArtifactStore implements driven.ModelArtifactStore for testing.
type mockArtifactStore struct {
	mu       sync.Mutex
	models   map[string]*domain.Model
	readErr  error
	writeErr error
	reads    int
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{models: make(map[string]*domain.Model)}
}

func (m *mockArtifactStore) Write(_ context.Context, model *domain.Model, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.models[dest] = model
	return nil
}

func (m *mockArtifactStore) Read(_ context.Context, src string) (*domain.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	model, ok := m.models[src]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return model, nil
}

// mockMetrics implements driven.Metrics and records calls.
type mockMetrics struct {
	mu       sync.Mutex
	queries  map[string]int
	failures map[string]int
	loads    int
	trained  int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{queries: make(map[string]int), failures: make(map[string]int)}
}

func (m *mockMetrics) ObserveQuery(op string, err error, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries[op]++
	if err != nil {
		m.failures[op]++
	}
}

func (m *mockMetrics) ObserveModelLoad(_ *domain.Model, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
}

func (m *mockMetrics) ObserveTraining(_ domain.TrainingStats, _ int64, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trained++
}

// --- Fixtures ---

// buildModel makes a model whose index order follows words.
func buildModel(t *testing.T, words []string, vectors [][]float32) *domain.Model {
	t.Helper()
	require.Equal(t, len(words), len(vectors))

	counts := make([]int64, len(words))
	data := make([]float32, 0, len(vectors)*len(vectors[0]))
	for i, v := range vectors {
		counts[i] = int64(len(words) - i)
		data = append(data, v...)
	}
	vocab, err := domain.NewVocabulary(words, counts, domain.DefaultSampleExponent)
	require.NoError(t, err)
	m, err := domain.NewMatrixFrom(len(words), len(vectors[0]), data)
	require.NoError(t, err)
	model, err := domain.NewModel("test-"+words[0], time.Unix(0, 0), vocab, m, domain.DefaultHyperparameters())
	require.NoError(t, err)
	return model
}

// installed returns a model store with model already live.
func installed(t *testing.T, model *domain.Model) *ModelStore {
	t.Helper()
	store := NewModelStore(newMockArtifactStore(), nil)
	require.NoError(t, store.Install(model))
	return store
}

func godfatherCorpus() *domain.Corpus {
	return domain.NewCorpus(
		[]string{"the", "godfather", "loves", "his", "family"},
		[]string{"michael", "is", "the", "son"},
	)
}

func smallParams() domain.Hyperparameters {
	p := domain.DefaultHyperparameters()
	p.Dimensions = 50
	p.MinCount = 1
	p.Workers = 1
	return p
}
