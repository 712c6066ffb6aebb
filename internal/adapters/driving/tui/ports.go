// Package tui provides an interactive terminal explorer for wordspace.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers neighbour, similarity and analogy queries.
	Query driving.QueryService

	// Models reports model swaps to the status bar. Optional.
	Models driving.ModelService

	// Corpus lists ingested documents. Optional.
	Corpus driving.CorpusService

	// Settings shows the active configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
