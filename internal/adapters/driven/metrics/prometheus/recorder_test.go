package prometheus

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

func testModel(t *testing.T) *domain.Model {
	t.Helper()
	vocab, err := domain.NewVocabulary([]string{"king", "queen"}, []int64{3, 2}, domain.DefaultSampleExponent)
	require.NoError(t, err)
	vectors, err := domain.NewMatrixFrom(2, 2, []float32{1, 0, 0, 1})
	require.NoError(t, err)
	model, err := domain.NewModel("7d3c1f9e-4a0b-4c55-9e0f-2b8a6d1e5c11", time.Now(), vocab, vectors, domain.DefaultHyperparameters())
	require.NoError(t, err)
	return model
}

func TestRecorder_InterfaceCompliance(t *testing.T) {
	var _ driven.Metrics = (*Recorder)(nil)
}

func TestRecorder_ObserveQuery(t *testing.T) {
	r := NewRecorder()

	r.ObserveQuery("similarity", nil, time.Millisecond)
	r.ObserveQuery("similarity", nil, time.Millisecond)
	r.ObserveQuery("similarity", errors.New("unknown word"), time.Millisecond)
	r.ObserveQuery("analogy", nil, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(r.queries.WithLabelValues("similarity", OutcomeOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.queries.WithLabelValues("similarity", OutcomeError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.queries.WithLabelValues("analogy", OutcomeOK)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.queryDuration))
}

func TestRecorder_ObserveModelLoad(t *testing.T) {
	r := NewRecorder()
	model := testModel(t)

	r.ObserveModelLoad(model, nil)
	assert.InDelta(t, 2, testutil.ToFloat64(r.vocabularySize), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.modelLoads.WithLabelValues(OutcomeOK)), 0)

	r.ObserveModelLoad(nil, errors.New("corrupt"))
	assert.InDelta(t, 2, testutil.ToFloat64(r.vocabularySize), 0, "failed load keeps gauge")
	assert.InDelta(t, 1, testutil.ToFloat64(r.modelLoads.WithLabelValues(OutcomeError)), 0)

	r.ObserveModelLoad(nil, nil)
	assert.InDelta(t, 0, testutil.ToFloat64(r.vocabularySize), 0, "unload resets gauge")
}

func TestRecorder_ObserveTraining(t *testing.T) {
	r := NewRecorder()
	r.ObserveTraining(domain.TrainingStats{Sentences: 3}, 1200, 2*time.Second)
	r.ObserveTraining(domain.TrainingStats{Sentences: 1}, 300, time.Second)

	assert.InDelta(t, 1500, testutil.ToFloat64(r.trainingWords), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.trainingDuration))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveQuery("nearest_neighbors", nil, time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `wordspace_queries_total{op="nearest_neighbors",outcome="ok"} 1`)
	assert.Contains(t, string(body), "wordspace_model_vocabulary_size 0")
}
