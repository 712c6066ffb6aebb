package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// BuildVocabulary counts token occurrences in one pass, drops tokens seen
// fewer than minCount times and indexes the rest by descending count then
// lexical order.
func BuildVocabulary(corpus *domain.Corpus, minCount int, exponent float64) (*domain.Vocabulary, domain.TrainingStats, error) {
	var stats domain.TrainingStats
	if corpus.Len() == 0 {
		return nil, stats, fmt.Errorf("%w: no sentences", domain.ErrEmptyCorpus)
	}
	if minCount < 1 {
		minCount = 1
	}

	counts := make(map[string]int64)
	for _, sentence := range corpus.Sentences {
		for _, tok := range sentence {
			counts[tok]++
		}
		stats.RawTokens += int64(len(sentence))
	}
	stats.Sentences = corpus.Len()
	if stats.RawTokens == 0 {
		return nil, stats, fmt.Errorf("%w: no tokens in %d sentences", domain.ErrEmptyCorpus, stats.Sentences)
	}

	words := make([]string, 0, len(counts))
	for w, c := range counts {
		if c >= int64(minCount) {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, stats, fmt.Errorf("%w: no token occurs at least %d times", domain.ErrEmptyVocabulary, minCount)
	}

	sort.Slice(words, func(i, j int) bool {
		ci, cj := counts[words[i]], counts[words[j]]
		if ci != cj {
			return ci > cj
		}
		return words[i] < words[j]
	})

	kept := make([]int64, len(words))
	for i, w := range words {
		kept[i] = counts[w]
		stats.RetainedTokens += kept[i]
	}

	vocab, err := domain.NewVocabulary(words, kept, exponent)
	if err != nil {
		return nil, stats, fmt.Errorf("build vocabulary: %w", err)
	}
	stats.VocabularySize = vocab.Size()

	logger.Debug("Vocabulary: %d sentences, %d tokens, %d distinct kept (%d tokens retained, min_count=%d)",
		stats.Sentences, stats.RawTokens, stats.VocabularySize, stats.RetainedTokens, minCount)
	return vocab, stats, nil
}

// BuildVocabulary validates params and builds the training vocabulary.
func (s *TrainingService) BuildVocabulary(
	_ context.Context, corpus *domain.Corpus, params domain.Hyperparameters,
) (*domain.Vocabulary, domain.TrainingStats, error) {
	if err := params.Validate(); err != nil {
		return nil, domain.TrainingStats{}, err
	}
	return BuildVocabulary(corpus, params.MinCount, params.SampleExponent)
}
