// Package domain defines the core entities for wordspace.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Vocabulary: Token to index bimap with counts and a negative-sampling table
//   - Matrix: A dense row-major V x D float32 embedding table
//   - Model: The immutable (Vocabulary, Matrix, Hyperparameters) unit
//   - Corpus: Ordered sentences of tokens fed to the trainer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
