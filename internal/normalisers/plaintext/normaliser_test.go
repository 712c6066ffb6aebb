package plaintext

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

func normalise(t *testing.T, text string) []domain.Sentence {
	t.Helper()
	out, err := New(domain.DefaultPreprocessSettings()).Normalise(context.Background(), "doc.txt", strings.NewReader(text))
	require.NoError(t, err)
	return out
}

func TestNew(t *testing.T) {
	normaliser := New(domain.DefaultPreprocessSettings())
	require.NotNil(t, normaliser)
	assert.Equal(t, 2, normaliser.minLen)
	assert.Equal(t, 15, normaliser.maxLen)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
	var _ driven.Normaliser = LineCorpus{}
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.Sentence
	}{
		{
			name: "godfather",
			text: "The Godfather loves his family. Michael is the son.",
			want: []domain.Sentence{
				{"the", "godfather", "loves", "his", "family"},
				{"michael", "is", "the", "son"},
			},
		},
		{
			name: "newlines are spaces",
			text: "I'm gonna make him\nan offer he can't\nrefuse.",
			want: []domain.Sentence{{"gonna", "make", "him", "an", "offer", "he", "can", "refuse"}},
		},
		{
			name: "terminator runs and mixed punctuation",
			text: "Leave the gun!! Take the cannoli?! Yes...",
			want: []domain.Sentence{{"leave", "the", "gun"}, {"take", "the", "cannoli"}, {"yes"}},
		},
		{
			name: "closing quote after terminator",
			text: `He said "never again." Then he left.`,
			want: []domain.Sentence{{"he", "said", "never", "again"}, {"then", "he", "left"}},
		},
		{
			name: "no split without whitespace",
			text: "Version 3.14 of the file.name was fine.",
			want: []domain.Sentence{{"version", "of", "the", "file", "name", "was", "fine"}},
		},
		{
			name: "digits and short tokens dropped",
			text: "A 1972 film by F. Coppola.",
			want: []domain.Sentence{{"film", "by"}, {"coppola"}},
		},
		{
			name: "long tokens dropped",
			text: "Supercalifragilistic words vanish.",
			want: []domain.Sentence{{"words", "vanish"}},
		},
		{
			name: "unicode letters",
			text: "Café CORLEONE à Palermo. Ñandú Straße.",
			want: []domain.Sentence{{"café", "corleone", "palermo"}, {"ñandú", "straße"}},
		},
		{
			name: "empty sentences dropped",
			text: "!!! ... 42. Ok.",
			want: []domain.Sentence{{"ok"}},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalise(t, tt.text))
		})
	}
}

func TestNormalise_CustomBounds(t *testing.T) {
	normaliser := New(domain.PreprocessSettings{MinTokenLength: 1, MaxTokenLength: 3})

	got, err := normaliser.Normalise(context.Background(), "", strings.NewReader("A big cat sat. Elephants too."))
	require.NoError(t, err)
	assert.Equal(t, []domain.Sentence{{"a", "big", "cat", "sat"}, {"too"}}, got)
}

func TestNormalise_NilReader(t *testing.T) {
	_, err := New(domain.DefaultPreprocessSettings()).Normalise(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text := strings.Repeat("Some words here. ", 5000)
	_, err := New(domain.DefaultPreprocessSettings()).Normalise(ctx, "", strings.NewReader(text))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLineCorpus(t *testing.T) {
	input := "the godfather loves his family\n\n  michael is   the son \nx\n"

	got, err := LineCorpus{}.Normalise(context.Background(), "corpus.txt", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []domain.Sentence{
		{"the", "godfather", "loves", "his", "family"},
		{"michael", "is", "the", "son"},
		{"x"},
	}, got)

	_, err = LineCorpus{}.Normalise(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
