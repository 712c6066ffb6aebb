// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ModelArtifactStore: Model serialisation (binary artifact, word2vec text)
//   - CorpusStore: Tokenised sentence persistence (SQLite or memory)
//   - Normaliser: Turns raw text into token-list sentences
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Metrics: Query, load and training instrumentation (Prometheus).
//     Without it nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
