package domain

import (
	"fmt"
	"time"
)

// Architecture selects the training objective.
type Architecture string

// Available architectures.
const (
	// ArchitectureSkipGram predicts each context token from the centre token.
	ArchitectureSkipGram Architecture = "skipgram"

	// ArchitectureCBOW predicts the centre token from the mean of its context.
	ArchitectureCBOW Architecture = "cbow"
)

// IsValid returns true if the architecture is recognised.
func (a Architecture) IsValid() bool {
	switch a {
	case ArchitectureSkipGram, ArchitectureCBOW:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a Architecture) String() string {
	return string(a)
}

// Description returns a human-readable description of the architecture.
func (a Architecture) Description() string {
	switch a {
	case ArchitectureSkipGram:
		return "Skip-gram (negative sampling)"
	case ArchitectureCBOW:
		return "CBOW (negative sampling)"
	default:
		return "Unknown"
	}
}

// Hyperparameters configures a training run. They are recorded with the
// model for reference and do not affect querying.
type Hyperparameters struct {
	// Architecture is the training objective.
	Architecture Architecture

	// Dimensions is the vector size D.
	Dimensions int

	// Window is the maximum context radius W.
	Window int

	// MinCount drops tokens seen fewer times than this.
	MinCount int

	// Negative is the number of negative samples K per positive pair.
	Negative int

	// Epochs is the number of full corpus passes.
	Epochs int

	// Alpha is the starting learning rate.
	Alpha float64

	// MinAlpha is the learning rate floor reached at the end of training.
	MinAlpha float64

	// SampleExponent shapes the unigram distribution for negatives.
	SampleExponent float64

	// Sample is the frequent-word downsampling threshold. Zero disables it.
	Sample float64

	// Workers is the number of training goroutines.
	Workers int

	// Seed makes single-worker runs reproducible.
	Seed uint64
}

// DefaultHyperparameters returns the standard training configuration.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Architecture:   ArchitectureSkipGram,
		Dimensions:     100,
		Window:         5,
		MinCount:       2,
		Negative:       5,
		Epochs:         5,
		Alpha:          0.025,
		MinAlpha:       0.0001,
		SampleExponent: DefaultSampleExponent,
		Sample:         0,
		Workers:        4,
		Seed:           1,
	}
}

// Validate checks every field is within range.
func (h Hyperparameters) Validate() error {
	switch {
	case !h.Architecture.IsValid():
		return fmt.Errorf("%w: architecture %q", ErrInvalidInput, h.Architecture)
	case h.Dimensions < 1:
		return fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidInput, h.Dimensions)
	case h.Window < 1:
		return fmt.Errorf("%w: window must be positive, got %d", ErrInvalidInput, h.Window)
	case h.MinCount < 1:
		return fmt.Errorf("%w: min count must be positive, got %d", ErrInvalidInput, h.MinCount)
	case h.Negative < 1:
		return fmt.Errorf("%w: negative must be positive, got %d", ErrInvalidInput, h.Negative)
	case h.Epochs < 1:
		return fmt.Errorf("%w: epochs must be positive, got %d", ErrInvalidInput, h.Epochs)
	case h.Alpha <= 0:
		return fmt.Errorf("%w: alpha must be positive, got %v", ErrInvalidInput, h.Alpha)
	case h.MinAlpha < 0 || h.MinAlpha > h.Alpha:
		return fmt.Errorf("%w: min alpha must be in [0, alpha], got %v", ErrInvalidInput, h.MinAlpha)
	case h.SampleExponent <= 0:
		return fmt.Errorf("%w: sample exponent must be positive, got %v", ErrInvalidInput, h.SampleExponent)
	case h.Sample < 0:
		return fmt.Errorf("%w: sample must not be negative, got %v", ErrInvalidInput, h.Sample)
	case h.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidInput, h.Workers)
	}
	return nil
}

// Model is the immutable product of a training run.
// It is created once and never mutated afterwards.
type Model struct {
	id        string
	createdAt time.Time
	vocab     *Vocabulary
	vectors   *Matrix
	params    Hyperparameters
}

// NewModel assembles a model, checking the vocabulary and matrix agree.
func NewModel(id string, createdAt time.Time, vocab *Vocabulary, vectors *Matrix, params Hyperparameters) (*Model, error) {
	if vocab == nil || vectors == nil {
		return nil, fmt.Errorf("%w: model requires a vocabulary and a matrix", ErrInvalidInput)
	}
	if vocab.Size() != vectors.Rows() {
		return nil, fmt.Errorf("%w: %d tokens, %d rows", ErrShapeMismatch, vocab.Size(), vectors.Rows())
	}
	params.Dimensions = vectors.Cols()
	return &Model{
		id:        id,
		createdAt: createdAt,
		vocab:     vocab,
		vectors:   vectors,
		params:    params,
	}, nil
}

// ID returns the model's unique identifier.
func (m *Model) ID() string { return m.id }

// CreatedAt returns when training finished.
func (m *Model) CreatedAt() time.Time { return m.createdAt }

// Vocabulary returns the model vocabulary.
func (m *Model) Vocabulary() *Vocabulary { return m.vocab }

// Vectors returns the embedding matrix. It must be treated as read-only.
func (m *Model) Vectors() *Matrix { return m.vectors }

// Hyperparameters returns the training configuration.
func (m *Model) Hyperparameters() Hyperparameters { return m.params }

// Size returns the vocabulary size V.
func (m *Model) Size() int { return m.vocab.Size() }

// Dimensions returns the vector size D.
func (m *Model) Dimensions() int { return m.vectors.Cols() }

// Vector returns a copy of the raw vector for word.
func (m *Model) Vector(word string) ([]float32, error) {
	i, ok := m.vocab.Index(word)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	out := make([]float32, m.vectors.Cols())
	copy(out, m.vectors.Row(i))
	return out, nil
}
