package driven

import (
	"context"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// CorpusStore persists ingested documents and their tokenised sentences.
type CorpusStore interface {
	// SaveDocument stores a document with its sentences, replacing any
	// existing document with the same ID.
	SaveDocument(ctx context.Context, doc *domain.CorpusDocument, sentences []domain.Sentence) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.CorpusDocument, error)

	// ListDocuments returns all documents in ingestion order.
	ListDocuments(ctx context.Context) ([]domain.CorpusDocument, error)

	// DeleteDocument removes a document and its sentences.
	DeleteDocument(ctx context.Context, id string) error

	// Sentences returns every sentence, ordered by document ingestion then position.
	Sentences(ctx context.Context) ([]domain.Sentence, error)

	// Stats summarises the stored corpus.
	Stats(ctx context.Context) (domain.CorpusStats, error)
}
