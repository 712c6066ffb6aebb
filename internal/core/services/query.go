package services

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// Query operation names used for metrics.
const (
	opSimilarity       = "similarity"
	opNearestNeighbors = "nearest_neighbors"
	opAnalogy          = "analogy"
	opVocabulary       = "vocabulary"
	opWordExists       = "word_exists"
	opVector           = "vector"
)

// QueryService answers similarity queries against the live model.
type QueryService struct {
	models  driving.ModelService
	metrics driven.Metrics
	index   atomic.Pointer[unitIndex]
}

// NewQueryService creates a new query service over the given model store.
// The metrics parameter is optional (can be nil).
func NewQueryService(models driving.ModelService, metrics driven.Metrics) *QueryService {
	return &QueryService{
		models:  models,
		metrics: metricsOrNop(metrics),
	}
}

// snapshot returns the unit index for the current model, building it the
// first time a model is queried.
func (s *QueryService) snapshot() (*unitIndex, error) {
	m, err := s.models.Current()
	if err != nil {
		return nil, err
	}
	if idx := s.index.Load(); idx != nil && idx.model == m {
		return idx, nil
	}
	idx := newUnitIndex(m)
	s.index.Store(idx)
	logger.Debug("Built unit index for model %s (V=%d D=%d)", m.ID(), m.Size(), m.Dimensions())
	return idx, nil
}

func (s *QueryService) observe(op string, start time.Time, err *error) {
	s.metrics.ObserveQuery(op, *err, time.Since(start))
}

// Similarity returns the cosine similarity of two words.
func (s *QueryService) Similarity(_ context.Context, w1, w2 string) (score float64, err error) {
	defer s.observe(opSimilarity, time.Now(), &err)
	idx, err := s.snapshot()
	if err != nil {
		return 0, err
	}
	return idx.similarity(normaliseWord(w1), normaliseWord(w2))
}

// NearestNeighbors returns the topN closest words to word.
func (s *QueryService) NearestNeighbors(_ context.Context, word string, topN int) (out []domain.Neighbor, err error) {
	defer s.observe(opNearestNeighbors, time.Now(), &err)
	idx, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return idx.nearest(normaliseWord(word), topN)
}

// Analogy ranks words by similarity to sum(positive) - sum(negative).
func (s *QueryService) Analogy(_ context.Context, query domain.AnalogyQuery) (out []domain.Neighbor, err error) {
	defer s.observe(opAnalogy, time.Now(), &err)
	idx, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return idx.analogy(normaliseWords(query.Positive), normaliseWords(query.Negative), query.TopN)
}

// VocabularySize returns V for the live model.
func (s *QueryService) VocabularySize(_ context.Context) (int, error) {
	m, err := s.models.Current()
	if err != nil {
		return 0, err
	}
	return m.Size(), nil
}

// WordExists reports whether word is in the vocabulary.
func (s *QueryService) WordExists(_ context.Context, word string) (ok bool, err error) {
	defer s.observe(opWordExists, time.Now(), &err)
	m, err := s.models.Current()
	if err != nil {
		return false, err
	}
	return m.Vocabulary().Contains(normaliseWord(word)), nil
}

// Vocabulary returns the first limit words in index order, most frequent first.
func (s *QueryService) Vocabulary(_ context.Context, limit int) (out []string, err error) {
	defer s.observe(opVocabulary, time.Now(), &err)
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be at least 1, got %d", domain.ErrInvalidQuery, limit)
	}
	m, err := s.models.Current()
	if err != nil {
		return nil, err
	}
	vocab := m.Vocabulary()
	if limit > vocab.Size() {
		limit = vocab.Size()
	}
	out = make([]string, limit)
	for i := range out {
		out[i] = vocab.Word(i)
	}
	return out, nil
}

// Vector returns the raw vector for word.
func (s *QueryService) Vector(_ context.Context, word string) (out []float32, err error) {
	defer s.observe(opVector, time.Now(), &err)
	m, err := s.models.Current()
	if err != nil {
		return nil, err
	}
	return m.Vector(normaliseWord(word))
}

// Health reports whether a model is loaded.
func (s *QueryService) Health(_ context.Context) domain.Health {
	m, err := s.models.Current()
	if err != nil {
		return domain.Health{Status: domain.HealthModelNotLoaded}
	}
	return domain.Health{
		Status:         domain.HealthOK,
		ModelLoaded:    true,
		VocabularySize: m.Size(),
		ModelID:        m.ID(),
	}
}

func normaliseWord(w string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(w))
}

func normaliseWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = normaliseWord(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// unitIndex is an immutable copy of a model's vectors scaled to unit length.
type unitIndex struct {
	model *domain.Model
	vocab *domain.Vocabulary
	dims  int
	unit  []float32
}

func newUnitIndex(m *domain.Model) *unitIndex {
	idx := &unitIndex{
		model: m,
		vocab: m.Vocabulary(),
		dims:  m.Dimensions(),
		unit:  make([]float32, len(m.Vectors().Data())),
	}
	copy(idx.unit, m.Vectors().Data())
	for i := 0; i < m.Size(); i++ {
		row := idx.row(i)
		// Zero vectors stay zero and score 0 against every other word.
		if n := blas32.Nrm2(row); n > 0 {
			blas32.Scal(1/n, row)
		}
	}
	return idx
}

func (x *unitIndex) row(i int) blas32.Vector {
	return blas32.Vector{N: x.dims, Inc: 1, Data: x.unit[i*x.dims : (i+1)*x.dims]}
}

func (x *unitIndex) lookup(word string) (int, error) {
	i, ok := x.vocab.Index(word)
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownWord, word)
	}
	return i, nil
}

func (x *unitIndex) similarity(w1, w2 string) (float64, error) {
	i, err := x.lookup(w1)
	if err != nil {
		return 0, err
	}
	j, err := x.lookup(w2)
	if err != nil {
		return 0, err
	}
	if i == j {
		return 1, nil
	}
	return clampCosine(blas32.DDot(x.row(i), x.row(j))), nil
}

func (x *unitIndex) nearest(word string, topN int) ([]domain.Neighbor, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: topN must be at least 1, got %d", domain.ErrInvalidQuery, topN)
	}
	i, err := x.lookup(word)
	if err != nil {
		return nil, err
	}
	return x.rank(x.row(i), map[int]struct{}{i: {}}, topN), nil
}

func (x *unitIndex) analogy(positive, negative []string, topN int) ([]domain.Neighbor, error) {
	if len(positive) == 0 {
		return nil, fmt.Errorf("%w: at least one positive word required", domain.ErrInvalidQuery)
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: topN must be at least 1, got %d", domain.ErrInvalidQuery, topN)
	}

	q := blas32.Vector{N: x.dims, Inc: 1, Data: make([]float32, x.dims)}
	exclude := make(map[int]struct{}, len(positive)+len(negative))
	for _, group := range []struct {
		words []string
		sign  float32
	}{{positive, 1}, {negative, -1}} {
		for _, w := range group.words {
			i, err := x.lookup(w)
			if err != nil {
				return nil, err
			}
			exclude[i] = struct{}{}
			blas32.Axpy(group.sign, x.row(i), q)
		}
	}

	n := blas32.Nrm2(q)
	if n == 0 || math.IsNaN(float64(n)) {
		return nil, fmt.Errorf("%w: positive and negative words cancel out", domain.ErrInvalidQuery)
	}
	blas32.Scal(1/n, q)
	return x.rank(q, exclude, topN), nil
}

// rank scores every row against q, skipping excluded indices, and returns
// the best topN by descending score then ascending index.
func (x *unitIndex) rank(q blas32.Vector, exclude map[int]struct{}, topN int) []domain.Neighbor {
	if limit := x.vocab.Size() - len(exclude); topN > limit {
		topN = limit
	}
	if topN <= 0 {
		return []domain.Neighbor{}
	}

	h := make(neighborHeap, 0, topN)
	for i := 0; i < x.vocab.Size(); i++ {
		if _, skip := exclude[i]; skip {
			continue
		}
		c := domain.Neighbor{Index: i, Score: clampCosine(blas32.DDot(x.row(i), q))}
		if len(h) < topN {
			heap.Push(&h, c)
		} else if better(c, h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	out := []domain.Neighbor(h)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	for i := range out {
		out[i].Word = x.vocab.Word(out[i].Index)
	}
	return out
}

func clampCosine(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// better orders neighbours by descending score, then ascending index.
func better(a, b domain.Neighbor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// neighborHeap is a min-heap with the worst kept candidate at the root.
type neighborHeap []domain.Neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return better(h[j], h[i]) }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(v any)        { *h = append(*h, v.(domain.Neighbor)) }
func (h *neighborHeap) Pop() any {
	old := *h
	v := old[len(old)-1]
	*h = old[:len(old)-1]
	return v
}
