package markdown

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// maxDocumentBytes bounds a single Markdown document.
const maxDocumentBytes = 64 << 20

// Extractor pulls prose out of Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Extract strips Markdown formatting. Headings and list items end their
// own sentence; paragraph lines are joined.
func (e *Extractor) Extract(_ context.Context, r io.Reader) (string, error) {
	if r == nil {
		return "", domain.ErrInvalidInput
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	if len(raw) > maxDocumentBytes {
		return "", fmt.Errorf("%w: markdown document larger than %d bytes", domain.ErrInvalidInput, maxDocumentBytes)
	}
	return stripMarkdown(string(raw)), nil
}

// Pre-compiled regular expressions for Markdown parsing.
var (
	codeBlock    = regexp.MustCompile("(?s)```.*?```")
	inlineCode   = regexp.MustCompile("`[^`]+`")
	images       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings     = regexp.MustCompile(`(?m)^#{1,6}\s+(.*)$`)
	blockquote   = regexp.MustCompile(`(?m)^>\s*`)
	hr           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers  = regexp.MustCompile(`(?m)^\s*[-*+]\s+(.*)$`)
	numberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.*)$`)
	emphasis     = regexp.MustCompile(`(\*\*|__|\*|_)`)
	multiBlank   = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting for plain text content.
// This is a simplified implementation that handles common cases.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = hr.ReplaceAllString(content, "")

	// Headings and list items are sentences on their own.
	content = headings.ReplaceAllStringFunc(content, func(m string) string {
		return terminate(headings.FindStringSubmatch(m)[1])
	})
	content = listMarkers.ReplaceAllStringFunc(content, func(m string) string {
		return terminate(listMarkers.FindStringSubmatch(m)[1])
	})
	content = numberedList.ReplaceAllStringFunc(content, func(m string) string {
		return terminate(numberedList.FindStringSubmatch(m)[1])
	})

	content = blockquote.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "")
	content = multiBlank.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// terminate appends a full stop unless line already ends a sentence.
func terminate(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.ContainsAny(line[len(line)-1:], ".!?") {
		return line
	}
	return line + "."
}
