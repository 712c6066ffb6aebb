package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// Ensure ModelStore implements the interface.
var _ driving.ModelService = (*ModelStore)(nil)

// ModelStore holds at most one live model. Readers take the current
// pointer without locking; loads and installs are serialised.
type ModelStore struct {
	artifacts driven.ModelArtifactStore
	metrics   driven.Metrics

	current atomic.Pointer[domain.Model]

	mu        sync.Mutex
	listeners []func(*domain.Model)
}

// NewModelStore creates an empty model store.
// The metrics parameter is optional (can be nil).
func NewModelStore(artifacts driven.ModelArtifactStore, metrics driven.Metrics) *ModelStore {
	return &ModelStore{
		artifacts: artifacts,
		metrics:   metricsOrNop(metrics),
	}
}

// Current returns the live model.
func (s *ModelStore) Current() (*domain.Model, error) {
	m := s.current.Load()
	if m == nil {
		return nil, domain.ErrModelNotLoaded
	}
	return m, nil
}

// Load reads the artifact at source and swaps it in. The previous model
// stays live if reading fails.
func (s *ModelStore) Load(ctx context.Context, source string) (*domain.Model, error) {
	if s.artifacts == nil {
		return nil, errors.New("model artifact store not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger.Section("Model Load")
	logger.Debug("Source: %s", source)

	model, err := s.artifacts.Read(ctx, source)
	if err != nil {
		s.metrics.ObserveModelLoad(nil, err)
		logger.Warn("Load failed, keeping current model: %v", err)
		return nil, fmt.Errorf("load model %s: %w", source, err)
	}

	s.swap(model)
	s.metrics.ObserveModelLoad(model, nil)
	logger.Info("Loaded model %s: V=%d D=%d", model.ID(), model.Size(), model.Dimensions())
	return model, nil
}

// Save writes model to dest.
func (s *ModelStore) Save(ctx context.Context, model *domain.Model, dest string) error {
	if s.artifacts == nil {
		return errors.New("model artifact store not configured")
	}
	if model == nil {
		return fmt.Errorf("%w: nil model", domain.ErrInvalidInput)
	}
	if err := s.artifacts.Write(ctx, model, dest); err != nil {
		return fmt.Errorf("save model %s: %w", dest, err)
	}
	logger.Debug("Saved model %s to %s", model.ID(), dest)
	return nil
}

// Install publishes an in-memory model.
func (s *ModelStore) Install(model *domain.Model) error {
	if model == nil {
		return fmt.Errorf("%w: nil model", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swap(model)
	s.metrics.ObserveModelLoad(model, nil)
	return nil
}

// Unload drops the live model.
func (s *ModelStore) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swap(nil)
	s.metrics.ObserveModelLoad(nil, nil)
}

// Subscribe registers fn to run after every swap.
func (s *ModelStore) Subscribe(fn func(*domain.Model)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// swap must be called with mu held.
func (s *ModelStore) swap(model *domain.Model) {
	s.current.Store(model)
	for _, fn := range s.listeners {
		fn(model)
	}
}
