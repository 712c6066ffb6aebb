package artifact

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

// Binary layout, little-endian throughout:
//
//	header   fileHeader (100 bytes)
//	vocab    V x (len u16 | token bytes | count u64), row index = position
//	matrix   V x D float32, row-major
//	trailer  crc32 (IEEE) of every preceding byte
const (
	binaryVersion = 1

	headerSize   = 100
	minEntrySize = 2 + 1 + 8

	maxVocabulary = 1 << 28
	maxDimensions = 1 << 16
)

var binaryMagic = [4]byte{'W', 'S', 'P', 'C'}

var archCodes = map[domain.Architecture]uint8{
	domain.ArchitectureSkipGram: 0,
	domain.ArchitectureCBOW:     1,
}

// fileHeader fields are exported for encoding/binary only.
type fileHeader struct {
	Magic          [4]byte
	Version        uint16
	Arch           uint8
	Reserved       uint8
	Vocab          uint32
	Dims           uint32
	Window         uint32
	MinCount       uint32
	Negative       uint32
	Epochs         uint32
	Workers        uint32
	Alpha          float64
	MinAlpha       float64
	SampleExponent float64
	Sample         float64
	Seed           uint64
	CreatedAt      int64
	ModelID        [16]byte
}

// Binary encodes models in the native checksummed format.
type Binary struct{}

// Encode writes model to w.
func (Binary) Encode(w io.Writer, model *domain.Model) error {
	id, err := uuid.Parse(model.ID())
	if err != nil {
		return fmt.Errorf("%w: model id %q is not a UUID", domain.ErrInvalidInput, model.ID())
	}
	params := model.Hyperparameters()
	arch, ok := archCodes[params.Architecture]
	if !ok {
		return fmt.Errorf("%w: architecture %q", domain.ErrInvalidInput, params.Architecture)
	}

	crc := crc32.NewIEEE()
	bw := bufio.NewWriter(io.MultiWriter(w, crc))

	h := fileHeader{
		Magic:          binaryMagic,
		Version:        binaryVersion,
		Arch:           arch,
		Vocab:          uint32(model.Size()),
		Dims:           uint32(model.Dimensions()),
		Window:         uint32(params.Window),
		MinCount:       uint32(params.MinCount),
		Negative:       uint32(params.Negative),
		Epochs:         uint32(params.Epochs),
		Workers:        uint32(params.Workers),
		Alpha:          params.Alpha,
		MinAlpha:       params.MinAlpha,
		SampleExponent: params.SampleExponent,
		Sample:         params.Sample,
		Seed:           params.Seed,
		CreatedAt:      model.CreatedAt().UnixNano(),
		ModelID:        id,
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return err
	}

	vocab := model.Vocabulary()
	var scratch [8]byte
	for i := 0; i < vocab.Size(); i++ {
		word := vocab.Word(i)
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("%w: token of %d bytes", domain.ErrInvalidInput, len(word))
		}
		binary.LittleEndian.PutUint16(scratch[:2], uint16(len(word)))
		if _, err := bw.Write(scratch[:2]); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(scratch[:], uint64(vocab.Count(i)))
		if _, err := bw.Write(scratch[:]); err != nil {
			return err
		}
	}

	row := make([]byte, 4*model.Dimensions())
	for i := 0; i < model.Size(); i++ {
		for j, v := range model.Vectors().Row(i) {
			binary.LittleEndian.PutUint32(row[4*j:], math.Float32bits(v))
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, crc.Sum32())
}

// Decode reads a model from r. When size is non-negative it is the total
// artifact length and is used to reject impossible headers before
// allocating.
func (Binary) Decode(r io.Reader, size int64) (*domain.Model, error) {
	br := bufio.NewReader(r)
	crc := crc32.NewIEEE()
	tr := io.TeeReader(br, crc)

	var h fileHeader
	if err := binary.Read(tr, binary.LittleEndian, &h); err != nil {
		return nil, corrupt("header", err)
	}
	if err := h.validate(size); err != nil {
		return nil, err
	}

	v, d := int(h.Vocab), int(h.Dims)
	words := make([]string, v)
	counts := make([]int64, v)
	var scratch [8]byte
	for i := 0; i < v; i++ {
		if _, err := io.ReadFull(tr, scratch[:2]); err != nil {
			return nil, corrupt(fmt.Sprintf("vocabulary entry %d", i), err)
		}
		token := make([]byte, binary.LittleEndian.Uint16(scratch[:2]))
		if _, err := io.ReadFull(tr, token); err != nil {
			return nil, corrupt(fmt.Sprintf("vocabulary entry %d", i), err)
		}
		if _, err := io.ReadFull(tr, scratch[:]); err != nil {
			return nil, corrupt(fmt.Sprintf("vocabulary entry %d", i), err)
		}
		count := binary.LittleEndian.Uint64(scratch[:])
		if count == 0 || count > math.MaxInt64 {
			return nil, fmt.Errorf("%w: vocabulary entry %d has count %d", domain.ErrCorruptArtifact, i, count)
		}
		words[i] = string(token)
		counts[i] = int64(count)
	}

	data := make([]float32, v*d)
	row := make([]byte, 4*d)
	for i := 0; i < v; i++ {
		if _, err := io.ReadFull(tr, row); err != nil {
			return nil, corrupt(fmt.Sprintf("matrix row %d of %d", i, v), err)
		}
		for j := 0; j < d; j++ {
			data[i*d+j] = math.Float32frombits(binary.LittleEndian.Uint32(row[4*j:]))
		}
	}

	want := crc.Sum32()
	var got uint32
	if err := binary.Read(br, binary.LittleEndian, &got); err != nil {
		return nil, corrupt("checksum", err)
	}
	if got != want {
		return nil, fmt.Errorf("%w: checksum %08x, computed %08x", domain.ErrCorruptArtifact, got, want)
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing bytes after checksum", domain.ErrCorruptArtifact)
	}

	vocab, err := domain.NewVocabulary(words, counts, h.SampleExponent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}
	vectors, err := domain.NewMatrixFrom(v, d, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}
	model, err := domain.NewModel(
		uuid.UUID(h.ModelID).String(), time.Unix(0, h.CreatedAt), vocab, vectors, h.hyperparameters(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptArtifact, err)
	}
	return model, nil
}

func (h *fileHeader) validate(size int64) error {
	switch {
	case h.Magic != binaryMagic:
		return fmt.Errorf("%w: bad magic %q", domain.ErrCorruptArtifact, h.Magic[:])
	case h.Version != binaryVersion:
		return fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptArtifact, h.Version)
	case h.Vocab == 0 || h.Vocab > maxVocabulary:
		return fmt.Errorf("%w: vocabulary size %d", domain.ErrCorruptArtifact, h.Vocab)
	case h.Dims == 0 || h.Dims > maxDimensions:
		return fmt.Errorf("%w: dimensions %d", domain.ErrCorruptArtifact, h.Dims)
	}
	if _, ok := h.architecture(); !ok {
		return fmt.Errorf("%w: architecture code %d", domain.ErrCorruptArtifact, h.Arch)
	}
	if size >= 0 {
		minimum := uint64(headerSize) + uint64(h.Vocab)*minEntrySize + uint64(h.Vocab)*uint64(h.Dims)*4 + 4
		if minimum > uint64(size) {
			return fmt.Errorf("%w: %d bytes cannot hold %d x %d vectors", domain.ErrCorruptArtifact, size, h.Vocab, h.Dims)
		}
	}
	return nil
}

func (h *fileHeader) architecture() (domain.Architecture, bool) {
	for arch, code := range archCodes {
		if code == h.Arch {
			return arch, true
		}
	}
	return "", false
}

func (h *fileHeader) hyperparameters() domain.Hyperparameters {
	arch, _ := h.architecture()
	return domain.Hyperparameters{
		Architecture:   arch,
		Dimensions:     int(h.Dims),
		Window:         int(h.Window),
		MinCount:       int(h.MinCount),
		Negative:       int(h.Negative),
		Epochs:         int(h.Epochs),
		Alpha:          h.Alpha,
		MinAlpha:       h.MinAlpha,
		SampleExponent: h.SampleExponent,
		Sample:         h.Sample,
		Workers:        int(h.Workers),
		Seed:           h.Seed,
	}
}

// corrupt wraps a read failure. Running out of input means truncation.
func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", domain.ErrCorruptArtifact, what)
	}
	return fmt.Errorf("read %s: %w", what, err)
}
