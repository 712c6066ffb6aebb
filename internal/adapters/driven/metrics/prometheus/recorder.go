package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.Metrics = (*Recorder)(nil)

const namespace = "wordspace"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Recorder implements driven.Metrics with Prometheus collectors.
type Recorder struct {
	registry *prometheus.Registry

	queries          *prometheus.CounterVec
	queryDuration    *prometheus.HistogramVec
	vocabularySize   prometheus.Gauge
	modelLoads       *prometheus.CounterVec
	trainingWords    prometheus.Counter
	trainingDuration prometheus.Histogram
}

// NewRecorder creates a recorder with a fresh registry that also exposes
// the Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Query calls by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query latency by operation.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"op"},
		),
		vocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "model_vocabulary_size",
				Help:      "Vocabulary size of the live model, 0 when none is loaded.",
			},
		),
		modelLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_loads_total",
				Help:      "Model load attempts by outcome.",
			},
			[]string{"outcome"},
		),
		trainingWords: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "training_words_total",
				Help:      "Corpus words processed by finished training runs.",
			},
		),
		trainingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "training_duration_seconds",
				Help:      "Wall time of finished training runs.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 4, 10),
			},
		),
	}

	r.registry.MustRegister(
		r.queries,
		r.queryDuration,
		r.vocabularySize,
		r.modelLoads,
		r.trainingWords,
		r.trainingDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveQuery records one query call and its outcome.
func (r *Recorder) ObserveQuery(op string, err error, elapsed time.Duration) {
	r.queries.WithLabelValues(op, outcome(err)).Inc()
	r.queryDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveModelLoad records a load attempt. A failed load leaves the
// vocabulary gauge at the previous model's size.
func (r *Recorder) ObserveModelLoad(model *domain.Model, err error) {
	if err != nil {
		r.modelLoads.WithLabelValues(OutcomeError).Inc()
		return
	}
	if model == nil {
		r.vocabularySize.Set(0)
		return
	}
	r.modelLoads.WithLabelValues(OutcomeOK).Inc()
	r.vocabularySize.Set(float64(model.Size()))
}

// ObserveTraining records a finished training run.
func (r *Recorder) ObserveTraining(_ domain.TrainingStats, words int64, elapsed time.Duration) {
	r.trainingWords.Add(float64(words))
	r.trainingDuration.Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
