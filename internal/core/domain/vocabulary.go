package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// DefaultSampleExponent is the unigram exponent applied to counts when
// building the negative-sampling distribution.
const DefaultSampleExponent = 0.75

// Vocabulary is an immutable bidirectional mapping between tokens and dense
// indices in [0, Size()). Index order is the order the words were supplied in.
type Vocabulary struct {
	words      []string
	counts     []int64
	index      map[string]int
	weights    []float64
	cumulative []float64
	total      int64
}

// NewVocabulary builds a vocabulary from parallel word and count slices.
// Sampling weights are count^exponent normalised to sum to one.
func NewVocabulary(words []string, counts []int64, exponent float64) (*Vocabulary, error) {
	if len(words) != len(counts) {
		return nil, fmt.Errorf("%w: %d words but %d counts", ErrInvalidInput, len(words), len(counts))
	}
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if exponent <= 0 || math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return nil, fmt.Errorf("%w: sample exponent %v", ErrInvalidInput, exponent)
	}

	v := &Vocabulary{
		words:      make([]string, len(words)),
		counts:     make([]int64, len(counts)),
		index:      make(map[string]int, len(words)),
		weights:    make([]float64, len(words)),
		cumulative: make([]float64, len(words)),
	}
	copy(v.words, words)
	copy(v.counts, counts)

	var mass float64
	for i, w := range v.words {
		if err := ValidateToken(w); err != nil {
			return nil, err
		}
		if _, dup := v.index[w]; dup {
			return nil, fmt.Errorf("%w: duplicate token %q", ErrInvalidInput, w)
		}
		if v.counts[i] < 1 {
			return nil, fmt.Errorf("%w: token %q has count %d", ErrInvalidInput, w, v.counts[i])
		}
		v.index[w] = i
		v.total += v.counts[i]
		v.weights[i] = math.Pow(float64(v.counts[i]), exponent)
		mass += v.weights[i]
	}

	var running float64
	for i := range v.weights {
		v.weights[i] /= mass
		running += v.weights[i]
		v.cumulative[i] = running
	}
	// Guard the last bucket against rounding so Sample never runs off the end.
	v.cumulative[len(v.cumulative)-1] = 1

	return v, nil
}

// ValidateToken reports whether s is a usable token: non-empty, no whitespace.
func ValidateToken(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidInput)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: token %q contains whitespace", ErrInvalidInput, s)
	}
	return nil
}

// Size returns the number of tokens V.
func (v *Vocabulary) Size() int {
	return len(v.words)
}

// Word returns the token at index i.
func (v *Vocabulary) Word(i int) string {
	return v.words[i]
}

// Index returns the index of a token and whether it is present.
func (v *Vocabulary) Index(word string) (int, bool) {
	i, ok := v.index[word]
	return i, ok
}

// Contains reports whether the token is in the vocabulary.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.index[word]
	return ok
}

// Count returns the raw corpus count of the token at index i.
func (v *Vocabulary) Count(i int) int64 {
	return v.counts[i]
}

// Weight returns the normalised sampling weight of the token at index i.
func (v *Vocabulary) Weight(i int) float64 {
	return v.weights[i]
}

// TotalCount returns the sum of all retained token counts.
func (v *Vocabulary) TotalCount() int64 {
	return v.total
}

// Words returns a copy of the tokens in index order.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Sample maps u in [0, 1) to an index drawn from the sampling distribution.
func (v *Vocabulary) Sample(u float64) int {
	i := sort.SearchFloat64s(v.cumulative, u)
	// SearchFloat64s returns the first bucket >= u; an exact hit on a
	// boundary belongs to the next bucket.
	if i < len(v.cumulative)-1 && v.cumulative[i] == u {
		i++
	}
	if i >= len(v.cumulative) {
		i = len(v.cumulative) - 1
	}
	return i
}
