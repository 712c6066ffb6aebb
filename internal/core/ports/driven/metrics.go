package driven

import (
	"time"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// Metrics records operational measurements.
type Metrics interface {
	// ObserveQuery records one query call and its outcome.
	ObserveQuery(op string, err error, elapsed time.Duration)

	// ObserveModelLoad records a load attempt. model is nil on failure or unload.
	ObserveModelLoad(model *domain.Model, err error)

	// ObserveTraining records a finished training run.
	ObserveTraining(stats domain.TrainingStats, words int64, elapsed time.Duration)
}
