package normalisers

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/logger"
	"github.com/custodia-labs/wordspace/internal/normalisers/html"
	"github.com/custodia-labs/wordspace/internal/normalisers/markdown"
	"github.com/custodia-labs/wordspace/internal/normalisers/pdf"
	"github.com/custodia-labs/wordspace/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches documents to an extractor by extension and tokenises
// the result.
type Registry struct {
	tokeniser driven.Normaliser

	mu         sync.RWMutex
	extractors map[string]driven.TextExtractor
}

// NewRegistry creates an empty registry that tokenises with tokeniser.
func NewRegistry(tokeniser driven.Normaliser) *Registry {
	return &Registry{
		tokeniser:  tokeniser,
		extractors: make(map[string]driven.TextExtractor),
	}
}

// DefaultRegistry registers the built-in extractors in front of the plain
// text tokeniser.
func DefaultRegistry(settings domain.PreprocessSettings) *Registry {
	r := NewRegistry(plaintext.New(settings))
	r.Register(html.New())
	r.Register(markdown.New())
	r.Register(pdf.New())
	return r
}

// Register adds an extractor for each of its extensions.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range extractor.Extensions() {
		r.extractors[strings.ToLower(ext)] = extractor
	}
}

// SupportedExtensions returns the registered extensions in sorted order.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// Normalise extracts text if name has a registered extension, then
// tokenises it.
func (r *Registry) Normalise(ctx context.Context, name string, rd io.Reader) ([]domain.Sentence, error) {
	if rd == nil {
		return nil, domain.ErrInvalidInput
	}

	ext := strings.ToLower(filepath.Ext(name))
	r.mu.RLock()
	extractor, ok := r.extractors[ext]
	r.mu.RUnlock()

	if ok {
		logger.Debug("Extracting %s with %T", name, extractor)
		text, err := extractor.Extract(ctx, rd)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", ext, err)
		}
		rd = strings.NewReader(text)
	}
	return r.tokeniser.Normalise(ctx, name, rd)
}
