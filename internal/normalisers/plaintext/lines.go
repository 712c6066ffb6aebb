package plaintext

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
)

// Ensure LineCorpus implements the interface.
var _ driven.Normaliser = LineCorpus{}

// maxLineBytes bounds one pre-tokenised sentence.
const maxLineBytes = 4 << 20

// LineCorpus reads pre-tokenised text: one sentence per line, tokens
// separated by whitespace. Tokens are taken as they are.
type LineCorpus struct{}

// Normalise reads every non-blank line as a sentence.
func (LineCorpus) Normalise(ctx context.Context, _ string, r io.Reader) ([]domain.Sentence, error) {
	if r == nil {
		return nil, domain.ErrInvalidInput
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var out []domain.Sentence
	for line := 1; scanner.Scan(); line++ {
		if line%ctxCheckSentences == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
			out = append(out, fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read line corpus: %w", err)
	}
	return out, nil
}
