package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/adapters/driven/artifact"
)

func TestModelStore_TrainSaveLoadAnswersAlike(t *testing.T) {
	ctx := context.Background()

	trained, _, err := NewTrainingService(nil).Train(ctx, godfatherCorpus(), smallParams(), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "godfather.bin")
	writer := NewModelStore(artifact.NewStore(), nil)
	require.NoError(t, writer.Save(ctx, trained, path))

	reader := NewModelStore(artifact.NewStore(), nil)
	loaded, err := reader.Load(ctx, path)
	require.NoError(t, err)
	require.Equal(t, trained.Size(), loaded.Size())
	require.Equal(t, trained.Dimensions(), loaded.Dimensions())

	before := NewQueryService(installed(t, trained), nil)
	after := NewQueryService(reader, nil)

	vocab := trained.Vocabulary().Words()
	for _, w := range vocab {
		want, err := before.NearestNeighbors(ctx, w, len(vocab)-1)
		require.NoError(t, err)
		got, err := after.NearestNeighbors(ctx, w, len(vocab)-1)
		require.NoError(t, err)
		assert.Equal(t, want, got, "neighbours of %q", w)

		for _, other := range vocab {
			want, err := before.Similarity(ctx, w, other)
			require.NoError(t, err)
			got, err := after.Similarity(ctx, w, other)
			require.NoError(t, err)
			assert.Equal(t, want, got, "similarity %q/%q", w, other)
		}
	}
}
