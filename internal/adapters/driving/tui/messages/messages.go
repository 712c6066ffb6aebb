// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// QueryKind identifies what an explorer query asks for.
type QueryKind int

const (
	// QueryNeighbors asks for the nearest neighbours of one word.
	QueryNeighbors QueryKind = iota
	// QuerySimilarity asks for the cosine similarity of two words.
	QuerySimilarity
	// QueryAnalogy asks for words near sum(positive) - sum(negative).
	QueryAnalogy
)

// QueryCompleted carries query results back to the model.
type QueryCompleted struct {
	Input string
	Kind  QueryKind

	// Neighbors is set for neighbour and analogy queries.
	Neighbors []domain.Neighbor

	// Similarity is set for similarity queries.
	Similarity float64

	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewExplore is the query input and results view.
	ViewExplore
	// ViewCorpus lists ingested documents.
	ViewCorpus
	// ViewSettings shows the active settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewExplore:
		return "explore"
	case ViewCorpus:
		return "corpus"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ModelChanged reports the model now being served.
type ModelChanged struct {
	Health domain.Health
}

// CorpusLoaded carries the ingested documents and corpus totals.
type CorpusLoaded struct {
	Documents []domain.CorpusDocument
	Stats     domain.CorpusStats
	Err       error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.Settings
	Err      error
}

// SettingsSaved reports the result of changing one setting.
type SettingsSaved struct {
	Key string
	Err error
}
