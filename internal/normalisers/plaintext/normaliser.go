package plaintext

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// ctxCheckSentences is how many sentences pass between context checks.
const ctxCheckSentences = 1024

// Normaliser splits plain text into sentences of lowercase word tokens.
//
// Newlines count as spaces. A sentence ends after a run of '.', '!' or '?'
// (optionally followed by closing quotes or brackets) when whitespace
// follows. Tokens are maximal runs of letters, kept when their length in
// runes is within the configured bounds.
type Normaliser struct {
	minLen int
	maxLen int
}

// New creates a plain text normaliser with the given token length bounds.
func New(settings domain.PreprocessSettings) *Normaliser {
	return &Normaliser{
		minLen: settings.MinTokenLength,
		maxLen: settings.MaxTokenLength,
	}
}

// Normalise tokenises r. The document name is not used.
func (n *Normaliser) Normalise(ctx context.Context, _ string, r io.Reader) ([]domain.Sentence, error) {
	if r == nil {
		return nil, domain.ErrInvalidInput
	}

	br := bufio.NewReader(r)
	caser := cases.Lower(language.Und)

	var (
		out      []domain.Sentence
		sentence domain.Sentence
		token    strings.Builder
		pending  bool // a terminator run was seen and whitespace would end the sentence
	)

	flushToken := func() {
		if token.Len() == 0 {
			return
		}
		word := caser.String(token.String())
		token.Reset()
		if l := utf8.RuneCountInString(word); l >= n.minLen && l <= n.maxLen {
			sentence = append(sentence, word)
		}
	}
	endSentence := func() {
		if len(sentence) > 0 {
			out = append(out, sentence)
			sentence = nil
		}
	}

	for {
		ch, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read text: %w", err)
		}

		switch {
		case isWordRune(ch):
			pending = false
			token.WriteRune(ch)
		case isTerminator(ch):
			flushToken()
			pending = true
		case pending && isCloser(ch):
			flushToken()
		case pending && unicode.IsSpace(ch):
			flushToken()
			endSentence()
			pending = false
			if len(out)%ctxCheckSentences == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
		default:
			flushToken()
			pending = false
		}
	}

	flushToken()
	endSentence()
	return out, nil
}

// isWordRune accepts letters and the combining marks that decorate them.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '”', '’', '»':
		return true
	}
	return false
}
