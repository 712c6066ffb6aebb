package artifact

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// maxLineBytes bounds a single text line: one token plus D formatted floats.
const maxLineBytes = 16 << 20

// Text reads and writes the word2vec text format: an optional "V D" header
// line followed by one "word f1 ... fD" line per row. Counts are not
// stored, so decoded vocabularies get counts derived from row order.
type Text struct{}

// Encode writes model to w with a header line.
func (Text) Encode(w io.Writer, model *domain.Model) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", model.Size(), model.Dimensions()); err != nil {
		return err
	}

	vocab := model.Vocabulary()
	buf := make([]byte, 0, 16*model.Dimensions())
	for i := 0; i < model.Size(); i++ {
		buf = append(buf[:0], vocab.Word(i)...)
		for _, v := range model.Vectors().Row(i) {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a model from r. The header line is optional; without it the
// dimension count comes from the first row.
func (Text) Decode(r io.Reader, _ int64) (*domain.Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	declared, dims := -1, -1
	var words []string
	var data []float32
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if line == 1 {
			if v, d, ok := parseTextHeader(fields); ok {
				declared, dims = v, d
				continue
			}
		}
		if dims < 0 {
			dims = len(fields) - 1
			if dims < 1 {
				return nil, fmt.Errorf("%w: line %d has no vector", domain.ErrCorruptArtifact, line)
			}
		}
		if len(fields) != dims+1 {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d",
				domain.ErrCorruptArtifact, line, len(fields)-1, dims)
		}

		words = append(words, fields[0])
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", domain.ErrCorruptArtifact, line, err)
			}
			data = append(data, float32(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no vectors", domain.ErrCorruptArtifact)
	}
	if declared >= 0 && declared != len(words) {
		return nil, fmt.Errorf("%w: header declares %d rows, found %d", domain.ErrCorruptArtifact, declared, len(words))
	}

	counts := make([]int64, len(words))
	for i := range counts {
		counts[i] = int64(len(words) - i)
	}
	vocab, err := domain.NewVocabulary(words, counts, domain.DefaultSampleExponent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}
	vectors, err := domain.NewMatrixFrom(len(words), dims, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}

	params := domain.DefaultHyperparameters()
	params.Dimensions = dims
	params.MinCount = 1
	return domain.NewModel(uuid.NewString(), time.Now(), vocab, vectors, params)
}

// parseTextHeader recognises a "V D" line of two positive integers.
func parseTextHeader(fields []string) (int, int, bool) {
	if len(fields) != 2 {
		return 0, 0, false
	}
	v, err := strconv.Atoi(fields[0])
	if err != nil || v < 1 {
		return 0, 0, false
	}
	d, err := strconv.Atoi(fields[1])
	if err != nil || d < 1 || d > maxDimensions {
		return 0, 0, false
	}
	return v, d, true
}
