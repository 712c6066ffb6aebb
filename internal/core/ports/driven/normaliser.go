package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// Normaliser transforms raw text into tokenised sentences: lowercased,
// punctuation stripped, sentence segmented. Empty sentences are dropped.
type Normaliser interface {
	// Normalise reads r to the end and returns its sentences. name is the
	// document name; its extension may select a format-specific extractor.
	Normalise(ctx context.Context, name string, r io.Reader) ([]domain.Sentence, error)
}

// TextExtractor pulls readable text out of a document format such as HTML
// or PDF before tokenisation.
type TextExtractor interface {
	// Extensions returns the lowercase file extensions handled, with the dot.
	Extensions() []string

	// Extract returns the document's plain text.
	Extract(ctx context.Context, r io.Reader) (string, error)
}
