package services

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driving"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// Ensure ProjectionService implements the interface.
var _ driving.ProjectionService = (*ProjectionService)(nil)

// ProjectionService projects word vectors onto their principal components.
type ProjectionService struct {
	models driving.ModelService
}

// NewProjectionService creates a new projection service.
func NewProjectionService(models driving.ModelService) *ProjectionService {
	return &ProjectionService{models: models}
}

// Project centres the selected vectors and returns their coordinates on the
// leading principal axes.
func (s *ProjectionService) Project(
	_ context.Context, words []string, limit, components int,
) ([]domain.ProjectedWord, error) {
	model, err := s.models.Current()
	if err != nil {
		return nil, err
	}
	if components < 1 || components > model.Dimensions() {
		return nil, fmt.Errorf("%w: components must be in [1, %d], got %d",
			domain.ErrInvalidQuery, model.Dimensions(), components)
	}

	selected, err := selectWords(model.Vocabulary(), words, limit)
	if err != nil {
		return nil, err
	}
	if len(selected) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 words to project, got %d", domain.ErrInvalidQuery, len(selected))
	}
	if components > len(selected) {
		components = len(selected)
	}

	logger.Section("Projection")
	logger.Debug("PCA over %d words to %d components", len(selected), components)

	d := model.Dimensions()
	data := mat.NewDense(len(selected), d, nil)
	for r, i := range selected {
		for c, v := range model.Vectors().Row(i) {
			data.Set(r, c, float64(v))
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("%w: principal component analysis did not converge", domain.ErrInvalidQuery)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	centred := mat.DenseCopyOf(data)
	for c := 0; c < d; c++ {
		col := mat.Col(nil, c, data)
		mean := stat.Mean(col, nil)
		for r := range col {
			centred.Set(r, c, col[r]-mean)
		}
	}

	var proj mat.Dense
	proj.Mul(centred, vecs.Slice(0, d, 0, components))

	out := make([]domain.ProjectedWord, len(selected))
	for r, i := range selected {
		out[r] = domain.ProjectedWord{
			Word:        model.Vocabulary().Word(i),
			Coordinates: mat.Row(nil, r, &proj),
		}
	}
	return out, nil
}

// selectWords resolves explicit words, or the limit most frequent words
// when none are given.
func selectWords(vocab *domain.Vocabulary, words []string, limit int) ([]int, error) {
	if len(words) == 0 {
		if limit < 1 || limit > vocab.Size() {
			limit = vocab.Size()
		}
		out := make([]int, limit)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	out := make([]int, 0, len(words))
	seen := make(map[int]bool, len(words))
	for _, w := range normaliseWords(words) {
		i, ok := vocab.Index(w)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownWord, w)
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out, nil
}
