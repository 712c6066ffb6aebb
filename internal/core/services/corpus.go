package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusService turns raw text into stored training sentences.
type CorpusService struct {
	store      driven.CorpusStore
	normaliser driven.Normaliser
}

// NewCorpusService creates a new corpus service.
func NewCorpusService(store driven.CorpusStore, normaliser driven.Normaliser) *CorpusService {
	return &CorpusService{
		store:      store,
		normaliser: normaliser,
	}
}

// Ingest normalises the text read from r and stores it as one document.
func (s *CorpusService) Ingest(ctx context.Context, name string, r io.Reader) (*domain.CorpusDocument, error) {
	return s.ingest(ctx, name, "", r)
}

// IngestFile ingests a text file from disk.
func (s *CorpusService) IngestFile(ctx context.Context, path string) (*domain.CorpusDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return s.ingest(ctx, filepath.Base(path), abs, f)
}

func (s *CorpusService) ingest(ctx context.Context, name, path string, r io.Reader) (*domain.CorpusDocument, error) {
	if s.store == nil || s.normaliser == nil {
		return nil, errors.New("corpus service not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}

	logger.Section("Ingest")
	logger.Debug("Document: %s", name)

	sentences, err := s.normaliser.Normalise(ctx, name, r)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", name, err)
	}

	doc := &domain.CorpusDocument{
		ID:         uuid.NewString(),
		Name:       name,
		Path:       path,
		Sentences:  len(sentences),
		IngestedAt: time.Now(),
	}
	for _, sentence := range sentences {
		doc.Tokens += len(sentence)
	}
	if doc.Tokens == 0 {
		logger.Warn("Document %s produced no tokens", name)
	}

	if err := s.store.SaveDocument(ctx, doc, sentences); err != nil {
		return nil, fmt.Errorf("store %s: %w", name, err)
	}
	logger.Info("Ingested %s: %d sentences, %d tokens", name, doc.Sentences, doc.Tokens)
	return doc, nil
}

// Parse preprocesses text from r without storing it.
func (s *CorpusService) Parse(ctx context.Context, name string, r io.Reader) ([]domain.Sentence, error) {
	if s.normaliser == nil {
		return nil, errors.New("corpus service not configured")
	}
	sentences, err := s.normaliser.Normalise(ctx, name, r)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", name, err)
	}
	return sentences, nil
}

// Documents lists ingested documents.
func (s *CorpusService) Documents(ctx context.Context) ([]domain.CorpusDocument, error) {
	return s.store.ListDocuments(ctx)
}

// Remove deletes a document and its sentences.
func (s *CorpusService) Remove(ctx context.Context, id string) error {
	if _, err := s.store.GetDocument(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteDocument(ctx, id)
}

// Stats summarises the stored corpus.
func (s *CorpusService) Stats(ctx context.Context) (domain.CorpusStats, error) {
	return s.store.Stats(ctx)
}

// Corpus returns all stored sentences.
func (s *CorpusService) Corpus(ctx context.Context) (*domain.Corpus, error) {
	sentences, err := s.store.Sentences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return &domain.Corpus{Sentences: sentences}, nil
}
