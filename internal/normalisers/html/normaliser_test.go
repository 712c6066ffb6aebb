package html

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".html", ".htm", ".xhtml"}, New().Extensions())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.TextExtractor = (*Extractor)(nil)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraphs become sentences",
			input:    "<html><head><title>Ignored</title></head><body><h1>The Godfather</h1><p>Michael is the son.</p></body></html>",
			expected: "The Godfather.\nMichael is the son.",
		},
		{
			name:     "scripts and styles removed",
			input:    "<p>Keep</p><script>var x = 1;</script><style>p { color: red }</style><noscript>nojs</noscript>",
			expected: "Keep.",
		},
		{
			name:     "entities decoded",
			input:    "<p>Sonny &amp; Fredo &lt;brothers&gt;</p>",
			expected: "Sonny & Fredo <brothers>.",
		},
		{
			name:     "comments removed",
			input:    "<p>Visible<!-- hidden --> text!</p>",
			expected: "Visible text!",
		},
		{
			name:     "line breaks split blocks",
			input:    "<div>one<br/>two<hr>three</div>",
			expected: "one.\ntwo.\nthree.",
		},
		{
			name:     "inline tags flattened",
			input:    "<p>An <b>offer</b> he <a href='#'>can't</a> refuse</p>",
			expected: "An offer he can't refuse.",
		},
		{
			name:     "empty document",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New().Extract(context.Background(), strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestExtract_NilReader(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
