package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Training Errors.

	// ErrEmptyCorpus indicates the corpus has no sentences or no tokens.
	// Training cannot start.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrEmptyVocabulary indicates no token survived min-count filtering.
	// Training cannot start.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// Query Errors.

	// ErrUnknownWord indicates a query references a token outside the vocabulary.
	ErrUnknownWord = errors.New("unknown word")

	// ErrInvalidQuery indicates a malformed query, such as an empty positive
	// word list or a non-positive result count.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrModelNotLoaded indicates the model store holds no model.
	ErrModelNotLoaded = errors.New("model not loaded")

	// Model Errors.

	// ErrCorruptArtifact indicates a persisted model failed header or shape validation.
	ErrCorruptArtifact = errors.New("corrupt model artifact")

	// ErrShapeMismatch indicates the vocabulary size and matrix row count differ.
	ErrShapeMismatch = errors.New("vocabulary size does not match matrix rows")
)
