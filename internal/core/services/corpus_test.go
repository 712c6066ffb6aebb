package services

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// lineNormaliser treats each line as one sentence of space-separated tokens.
type lineNormaliser struct{}

func (lineNormaliser) Normalise(_ context.Context, _ string, r io.Reader) ([]domain.Sentence, error) {
	var out []domain.Sentence
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if fields := strings.Fields(strings.ToLower(scanner.Text())); len(fields) > 0 {
			out = append(out, fields)
		}
	}
	return out, scanner.Err()
}

func newTestCorpusService() *CorpusService {
	return NewCorpusService(memory.NewCorpusStore(), lineNormaliser{})
}

func TestCorpusService_Ingest(t *testing.T) {
	ctx := context.Background()
	svc := newTestCorpusService()

	doc, err := svc.Ingest(ctx, "godfather", strings.NewReader("The Godfather loves his family\nMichael is the son\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "godfather", doc.Name)
	assert.Equal(t, 2, doc.Sentences)
	assert.Equal(t, 9, doc.Tokens)
	assert.False(t, doc.IngestedAt.IsZero())

	corpus, err := svc.Corpus(ctx)
	require.NoError(t, err)
	assert.Equal(t, godfatherCorpus().Sentences, corpus.Sentences)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, int64(2), stats.Sentences)
	assert.Equal(t, int64(9), stats.Tokens)
}

func TestCorpusService_IngestRequiresName(t *testing.T) {
	_, err := newTestCorpusService().Ingest(context.Background(), "  ", strings.NewReader("text"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCorpusService_NotConfigured(t *testing.T) {
	_, err := NewCorpusService(nil, nil).Ingest(context.Background(), "doc", strings.NewReader("text"))
	assert.Error(t, err)
}

func TestCorpusService_IngestFile(t *testing.T) {
	ctx := context.Background()
	svc := newTestCorpusService()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("aa bb cc\n"), 0o600))

	doc, err := svc.IngestFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Name)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, 3, doc.Tokens)

	_, err = svc.IngestFile(ctx, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestCorpusService_Remove(t *testing.T) {
	ctx := context.Background()
	svc := newTestCorpusService()

	first, err := svc.Ingest(ctx, "first", strings.NewReader("aa bb\n"))
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "second", strings.NewReader("cc dd\n"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, first.ID))
	docs, err := svc.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "second", docs[0].Name)

	corpus, err := svc.Corpus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Sentence{{"cc", "dd"}}, corpus.Sentences)

	assert.ErrorIs(t, svc.Remove(ctx, first.ID), domain.ErrNotFound)
}

func TestCorpusService_FeedsTraining(t *testing.T) {
	ctx := context.Background()
	svc := newTestCorpusService()
	_, err := svc.Ingest(ctx, "godfather", strings.NewReader("the godfather loves his family\nmichael is the son\n"))
	require.NoError(t, err)

	corpus, err := svc.Corpus(ctx)
	require.NoError(t, err)
	model, _, err := NewTrainingService(nil).Train(ctx, corpus, smallParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, model.Size())
}

func TestCorpusService_ParseDoesNotStore(t *testing.T) {
	ctx := context.Background()
	svc := newTestCorpusService()

	sentences, err := svc.Parse(ctx, "scratch.txt", strings.NewReader("one two\nthree"))
	require.NoError(t, err)
	assert.Equal(t, []domain.Sentence{{"one", "two"}, {"three"}}, sentences)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Documents)
}
