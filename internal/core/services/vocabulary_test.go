package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

func TestBuildVocabulary_Godfather(t *testing.T) {
	vocab, stats, err := BuildVocabulary(godfatherCorpus(), 1, domain.DefaultSampleExponent)
	require.NoError(t, err)

	assert.Equal(t, 8, vocab.Size())
	assert.Equal(t, domain.TrainingStats{
		Sentences:      2,
		RawTokens:      9,
		RetainedTokens: 9,
		VocabularySize: 8,
	}, stats)

	// "the" occurs twice so it leads; the rest are ordered lexically.
	assert.Equal(t, []string{"the", "family", "godfather", "his", "is", "loves", "michael", "son"}, vocab.Words())
	assert.Equal(t, int64(2), vocab.Count(0))
}

func TestBuildVocabulary_MinCount(t *testing.T) {
	corpus := domain.NewCorpus(
		[]string{"aa", "aa", "aa", "bb", "bb", "cc"},
		[]string{"aa", "bb", "dd"},
	)

	for minCount := 1; minCount <= 5; minCount++ {
		t.Run(fmt.Sprintf("min_count=%d", minCount), func(t *testing.T) {
			counts := map[string]int{"aa": 4, "bb": 3, "cc": 1, "dd": 1}
			vocab, stats, err := BuildVocabulary(corpus, minCount, domain.DefaultSampleExponent)
			if minCount == 5 {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrEmptyVocabulary))
				return
			}
			require.NoError(t, err)

			var retained int64
			for w, c := range counts {
				if c >= minCount {
					assert.True(t, vocab.Contains(w), "%s should survive", w)
					retained += int64(c)
				} else {
					assert.False(t, vocab.Contains(w), "%s should be dropped", w)
				}
			}
			assert.Equal(t, retained, stats.RetainedTokens)
			assert.Equal(t, int64(9), stats.RawTokens)
		})
	}
}

func TestBuildVocabulary_Deterministic(t *testing.T) {
	corpus := domain.NewCorpus(
		[]string{"zz", "yy", "xx", "ww"},
		[]string{"ww", "xx"},
	)
	first, _, err := BuildVocabulary(corpus, 1, domain.DefaultSampleExponent)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, _, err := BuildVocabulary(corpus, 1, domain.DefaultSampleExponent)
		require.NoError(t, err)
		assert.Equal(t, first.Words(), again.Words())
	}
	assert.Equal(t, []string{"ww", "xx", "yy", "zz"}, first.Words())
}

func TestBuildVocabulary_EmptyCorpus(t *testing.T) {
	tests := []struct {
		name   string
		corpus *domain.Corpus
	}{
		{"nil corpus", nil},
		{"no sentences", &domain.Corpus{}},
		{"only empty sentences", domain.NewCorpus([]string{}, []string{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vocab, _, err := BuildVocabulary(tt.corpus, 1, domain.DefaultSampleExponent)
			assert.Nil(t, vocab)
			assert.True(t, errors.Is(err, domain.ErrEmptyCorpus), "got %v", err)
		})
	}
}

func TestTrainingService_BuildVocabulary_ValidatesParams(t *testing.T) {
	svc := NewTrainingService(nil)
	params := smallParams()
	params.Window = 0

	_, _, err := svc.BuildVocabulary(context.Background(), godfatherCorpus(), params)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
