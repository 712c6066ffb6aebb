package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// Ensure TrainingService implements the interface.
var _ driving.TrainingService = (*TrainingService)(nil)

const (
	// alphaRefreshWords is how many words a worker trains between
	// learning rate updates.
	alphaRefreshWords = 10000

	// maxNegativeRedraws bounds resampling when a negative draw hits the
	// output-side positive of the current pair. That is the context word in
	// skip-gram and the centre word in CBOW. Tiny vocabularies skip the
	// negative instead.
	maxNegativeRedraws = 8

	defaultProgressInterval = time.Second
)

// TrainingService trains word embeddings with negative sampling.
type TrainingService struct {
	metrics          driven.Metrics
	progressInterval time.Duration
}

// NewTrainingService creates a new training service.
// The metrics parameter is optional (can be nil).
func NewTrainingService(metrics driven.Metrics) *TrainingService {
	return &TrainingService{
		metrics:          metricsOrNop(metrics),
		progressInterval: defaultProgressInterval,
	}
}

// SetProgressInterval sets how often progress callbacks fire.
func (s *TrainingService) SetProgressInterval(d time.Duration) {
	if d > 0 {
		s.progressInterval = d
	}
}

// Train builds the vocabulary and runs every epoch. The returned model is
// only produced once all epochs finish.
func (s *TrainingService) Train(
	ctx context.Context, corpus *domain.Corpus, params domain.Hyperparameters, onProgress driving.ProgressFunc,
) (*domain.Model, domain.TrainingStats, error) {
	logger.Section("Training")

	if err := ctx.Err(); err != nil {
		return nil, domain.TrainingStats{}, err
	}
	vocab, stats, err := s.BuildVocabulary(ctx, corpus, params)
	if err != nil {
		return nil, stats, err
	}

	start := time.Now()
	run := newTrainingRun(corpus, vocab, params)
	logger.Debug("Architecture: %s, D=%d, W=%d, K=%d, epochs=%d, workers=%d",
		params.Architecture, params.Dimensions, params.Window, params.Negative, params.Epochs, len(run.shards))

	stop := s.monitor(run, start, onProgress)
	for epoch := 0; epoch < params.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			stop(false)
			logger.Warn("Training cancelled at epoch %d/%d", epoch+1, params.Epochs)
			return nil, stats, err
		}
		run.epoch.Store(int32(epoch))
		run.runEpoch()
		logger.Debug("Epoch %d/%d done, alpha %.6f", epoch+1, params.Epochs, run.currentAlpha())
	}
	stop(true)

	vectors, err := domain.NewMatrixFrom(vocab.Size(), params.Dimensions, run.syn0)
	if err != nil {
		return nil, stats, fmt.Errorf("assemble model: %w", err)
	}
	model, err := domain.NewModel(uuid.NewString(), time.Now(), vocab, vectors, params)
	if err != nil {
		return nil, stats, fmt.Errorf("assemble model: %w", err)
	}

	elapsed := time.Since(start)
	s.metrics.ObserveTraining(stats, run.processed.Load(), elapsed)
	logger.Info("Trained %d vectors of %d dimensions in %s", vocab.Size(), params.Dimensions, elapsed.Round(time.Millisecond))
	return model, stats, nil
}

// monitor reports progress on a ticker until the returned stop func is
// called. stop(true) emits a final complete snapshot.
func (s *TrainingService) monitor(run *trainingRun, start time.Time, onProgress driving.ProgressFunc) func(bool) {
	if onProgress == nil {
		return func(bool) {}
	}
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				onProgress(run.snapshot(start))
			}
		}
	}()
	return func(completed bool) {
		close(done)
		wg.Wait()
		if completed {
			onProgress(run.snapshot(start))
		}
	}
}

// trainingRun holds the mutable state of one training job. syn0 and
// syn1neg are shared by all workers without locking: concurrent updates
// to the same row may interleave per element.
type trainingRun struct {
	params   domain.Hyperparameters
	vocab    *domain.Vocabulary
	dims     int
	syn0     []float32
	syn1neg  []float32
	keepProb []float64
	shards   [][][]int32
	workers  []*worker

	totalWords int64
	processed  atomic.Int64
	alphaBits  atomic.Uint64
	epoch      atomic.Int32
}

func newTrainingRun(corpus *domain.Corpus, vocab *domain.Vocabulary, params domain.Hyperparameters) *trainingRun {
	run := &trainingRun{
		params: params,
		vocab:  vocab,
		dims:   params.Dimensions,
	}

	sentences := encodeCorpus(corpus, vocab)
	var words int64
	for _, s := range sentences {
		words += int64(len(s))
	}
	run.totalWords = words * int64(params.Epochs)
	run.alphaBits.Store(math.Float64bits(params.Alpha))

	if params.Sample > 0 {
		run.keepProb = keepProbabilities(vocab, params.Sample)
	}

	v, d := vocab.Size(), params.Dimensions
	run.syn0 = make([]float32, v*d)
	run.syn1neg = make([]float32, v*d)
	init := rand.New(rand.NewPCG(params.Seed, 0))
	for i := range run.syn0 {
		run.syn0[i] = (init.Float32() - 0.5) / float32(d)
	}

	n := params.Workers
	if n > len(sentences) {
		n = len(sentences)
	}
	if n < 1 {
		n = 1
	}
	run.shards = make([][][]int32, n)
	run.workers = make([]*worker, n)
	for i := 0; i < n; i++ {
		run.shards[i] = sentences[i*len(sentences)/n : (i+1)*len(sentences)/n]
		run.workers[i] = &worker{
			run:      run,
			rng:      rand.New(rand.NewPCG(params.Seed, uint64(i)+1)),
			neu1:     make([]float32, d),
			neu1e:    make([]float32, d),
			filtered: make([]int32, 0, 64),
		}
	}
	return run
}

// encodeCorpus maps tokens to indices and drops out-of-vocabulary tokens.
// Windows then span the gaps they leave.
func encodeCorpus(corpus *domain.Corpus, vocab *domain.Vocabulary) [][]int32 {
	out := make([][]int32, 0, corpus.Len())
	for _, sentence := range corpus.Sentences {
		enc := make([]int32, 0, len(sentence))
		for _, tok := range sentence {
			if i, ok := vocab.Index(tok); ok {
				enc = append(enc, int32(i))
			}
		}
		if len(enc) > 0 {
			out = append(out, enc)
		}
	}
	return out
}

// keepProbabilities computes the word2vec downsampling keep probability
// for every vocabulary entry.
func keepProbabilities(vocab *domain.Vocabulary, sample float64) []float64 {
	threshold := sample * float64(vocab.TotalCount())
	probs := make([]float64, vocab.Size())
	for i := range probs {
		c := float64(vocab.Count(i))
		p := (math.Sqrt(c/threshold) + 1) * threshold / c
		if p > 1 {
			p = 1
		}
		probs[i] = p
	}
	return probs
}

// runEpoch trains every shard once and waits for all workers.
func (r *trainingRun) runEpoch() {
	var wg sync.WaitGroup
	for i, w := range r.workers {
		wg.Add(1)
		go func(shard [][]int32) {
			defer wg.Done()
			w.trainShard(shard)
		}(r.shards[i])
	}
	wg.Wait()
}

// alphaAt returns the linearly decayed learning rate after processed words.
func (r *trainingRun) alphaAt(processed int64) float64 {
	p := r.params
	if r.totalWords == 0 {
		return p.Alpha
	}
	alpha := p.Alpha - (p.Alpha-p.MinAlpha)*float64(processed)/float64(r.totalWords)
	if alpha < p.MinAlpha {
		alpha = p.MinAlpha
	}
	return alpha
}

func (r *trainingRun) currentAlpha() float64 {
	return math.Float64frombits(r.alphaBits.Load())
}

func (r *trainingRun) snapshot(start time.Time) domain.TrainingProgress {
	return domain.TrainingProgress{
		Epoch:          int(r.epoch.Load()) + 1,
		Epochs:         r.params.Epochs,
		WordsProcessed: r.processed.Load(),
		TotalWords:     r.totalWords,
		Alpha:          r.currentAlpha(),
		Elapsed:        time.Since(start),
	}
}

func (r *trainingRun) row(m []float32, i int32) blas32.Vector {
	off := int(i) * r.dims
	return blas32.Vector{N: r.dims, Inc: 1, Data: m[off : off+r.dims]}
}

// worker owns an RNG and scratch buffers; it is used by one goroutine at a time.
type worker struct {
	run      *trainingRun
	rng      *rand.Rand
	neu1     []float32
	neu1e    []float32
	filtered []int32
	alpha    float32
	pending  int64
}

func (w *worker) trainShard(shard [][]int32) {
	w.alpha = float32(w.run.alphaAt(w.run.processed.Load()))
	for _, sentence := range shard {
		sent := w.downsample(sentence)
		if w.run.params.Architecture == domain.ArchitectureCBOW {
			w.trainCBOW(sent)
		} else {
			w.trainSkipGram(sent)
		}
		w.pending += int64(len(sentence))
		if w.pending >= alphaRefreshWords {
			w.flush()
		}
	}
	w.flush()
}

// flush publishes the local word count and refreshes the learning rate.
func (w *worker) flush() {
	if w.pending == 0 {
		return
	}
	processed := w.run.processed.Add(w.pending)
	w.pending = 0
	alpha := w.run.alphaAt(processed)
	w.run.alphaBits.Store(math.Float64bits(alpha))
	w.alpha = float32(alpha)
}

func (w *worker) downsample(sentence []int32) []int32 {
	if w.run.keepProb == nil {
		return sentence
	}
	w.filtered = w.filtered[:0]
	for _, idx := range sentence {
		if w.rng.Float64() < w.run.keepProb[idx] {
			w.filtered = append(w.filtered, idx)
		}
	}
	return w.filtered
}

// window returns the clipped context bounds around pos for a radius drawn
// uniformly from [1, W].
func (w *worker) window(pos, n int) (int, int) {
	radius := w.run.params.Window - w.rng.IntN(w.run.params.Window)
	lo, hi := pos-radius, pos+radius
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// trainSkipGram treats every (centre, context) pair in the window as a
// positive example for the centre's input vector.
func (w *worker) trainSkipGram(sent []int32) {
	for pos, centre := range sent {
		lo, hi := w.window(pos, len(sent))
		l1 := w.run.row(w.run.syn0, centre)
		for c := lo; c <= hi; c++ {
			if c == pos {
				continue
			}
			clear(w.neu1e)
			w.negativeSampling(l1, sent[c])
			blas32.Axpy(1, blas32.Vector{N: w.run.dims, Inc: 1, Data: w.neu1e}, l1)
		}
	}
}

// trainCBOW predicts each centre token from the mean of its context
// input vectors and spreads the error back to every context vector.
func (w *worker) trainCBOW(sent []int32) {
	d := w.run.dims
	neu1 := blas32.Vector{N: d, Inc: 1, Data: w.neu1}
	neu1e := blas32.Vector{N: d, Inc: 1, Data: w.neu1e}
	for pos, centre := range sent {
		lo, hi := w.window(pos, len(sent))
		if hi-lo < 1 {
			continue
		}
		clear(w.neu1)
		for c := lo; c <= hi; c++ {
			if c != pos {
				blas32.Axpy(1, w.run.row(w.run.syn0, sent[c]), neu1)
			}
		}
		blas32.Scal(1/float32(hi-lo), neu1)

		clear(w.neu1e)
		w.negativeSampling(neu1, centre)
		for c := lo; c <= hi; c++ {
			if c != pos {
				blas32.Axpy(1, neu1e, w.run.row(w.run.syn0, sent[c]))
			}
		}
	}
}

// negativeSampling applies one positive and K negative logistic updates to
// the output vectors and accumulates the input gradient into w.neu1e.
func (w *worker) negativeSampling(l1 blas32.Vector, positive int32) {
	neu1e := blas32.Vector{N: w.run.dims, Inc: 1, Data: w.neu1e}
	for k := 0; k <= w.run.params.Negative; k++ {
		target, label := positive, float32(1)
		if k > 0 {
			var ok bool
			if target, ok = w.drawNegative(positive); !ok {
				continue
			}
			label = 0
		}
		l2 := w.run.row(w.run.syn1neg, target)
		g := (label - sigmoid(blas32.Dot(l1, l2))) * w.alpha
		blas32.Axpy(g, l2, neu1e)
		blas32.Axpy(g, l1, l2)
	}
}

// drawNegative samples from the unigram table, redrawing when it hits the
// output-side positive being predicted. The input word is not excluded.
// It gives up after maxNegativeRedraws collisions.
func (w *worker) drawNegative(positive int32) (int32, bool) {
	for attempt := 0; attempt <= maxNegativeRedraws; attempt++ {
		idx := int32(w.run.vocab.Sample(w.rng.Float64()))
		if idx != positive {
			return idx, true
		}
	}
	return 0, false
}
