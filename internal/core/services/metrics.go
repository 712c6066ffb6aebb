package services

import (
	"time"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// nopMetrics discards every observation.
type nopMetrics struct{}

func (nopMetrics) ObserveQuery(string, error, time.Duration)                  {}
func (nopMetrics) ObserveModelLoad(*domain.Model, error)                      {}
func (nopMetrics) ObserveTraining(domain.TrainingStats, int64, time.Duration) {}

func metricsOrNop(m driven.Metrics) driven.Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
