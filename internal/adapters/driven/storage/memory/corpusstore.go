package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
type CorpusStore struct {
	mu        sync.RWMutex
	order     []string
	documents map[string]domain.CorpusDocument
	sentences map[string][]domain.Sentence
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{
		documents: make(map[string]domain.CorpusDocument),
		sentences: make(map[string][]domain.Sentence),
	}
}

// SaveDocument stores or replaces a document and its sentences.
func (s *CorpusStore) SaveDocument(_ context.Context, doc *domain.CorpusDocument, sentences []domain.Sentence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.documents[doc.ID] = *doc
	s.sentences[doc.ID] = cloneSentences(sentences)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *CorpusStore) GetDocument(_ context.Context, id string) (*domain.CorpusDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns documents in ingestion order.
func (s *CorpusStore) ListDocuments(_ context.Context) ([]domain.CorpusDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CorpusDocument, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.documents[id])
	}
	return out, nil
}

// DeleteDocument removes a document and its sentences.
func (s *CorpusStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return nil
	}
	delete(s.documents, id)
	delete(s.sentences, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Sentences returns every sentence in document then position order.
func (s *CorpusStore) Sentences(_ context.Context) ([]domain.Sentence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Sentence
	for _, id := range s.order {
		out = append(out, cloneSentences(s.sentences[id])...)
	}
	return out, nil
}

// Stats summarises the stored corpus.
func (s *CorpusStore) Stats(_ context.Context) (domain.CorpusStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.CorpusStats{Documents: len(s.documents)}
	for _, sentences := range s.sentences {
		stats.Sentences += int64(len(sentences))
		for _, sentence := range sentences {
			stats.Tokens += int64(len(sentence))
		}
	}
	return stats, nil
}

func cloneSentences(in []domain.Sentence) []domain.Sentence {
	out := make([]domain.Sentence, len(in))
	for i, s := range in {
		out[i] = append(domain.Sentence(nil), s...)
	}
	return out
}
