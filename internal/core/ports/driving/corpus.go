package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// CorpusService manages the stored training corpus.
type CorpusService interface {
	// Ingest preprocesses text from r and stores it as a new document.
	Ingest(ctx context.Context, name string, r io.Reader) (*domain.CorpusDocument, error)

	// IngestFile ingests a text file from disk.
	IngestFile(ctx context.Context, path string) (*domain.CorpusDocument, error)

	// Documents lists ingested documents in ingestion order.
	Documents(ctx context.Context) ([]domain.CorpusDocument, error)

	// Remove deletes a document and its sentences.
	Remove(ctx context.Context, id string) error

	// Stats summarises the stored corpus.
	Stats(ctx context.Context) (domain.CorpusStats, error)

	// Parse preprocesses text from r without storing it.
	Parse(ctx context.Context, name string, r io.Reader) ([]domain.Sentence, error)

	// Corpus returns every stored sentence ready for training.
	Corpus(ctx context.Context) (*domain.Corpus, error)
}
