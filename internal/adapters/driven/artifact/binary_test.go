package artifact

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

func newTestModel(t *testing.T, words []string, dims int) *domain.Model {
	t.Helper()
	counts := make([]int64, len(words))
	data := make([]float32, len(words)*dims)
	for i := range words {
		counts[i] = int64(100 - i)
		for j := 0; j < dims; j++ {
			data[i*dims+j] = float32(i)*0.5 - float32(j)/3
		}
	}
	vocab, err := domain.NewVocabulary(words, counts, domain.DefaultSampleExponent)
	require.NoError(t, err)
	vectors, err := domain.NewMatrixFrom(len(words), dims, data)
	require.NoError(t, err)

	params := domain.DefaultHyperparameters()
	params.Architecture = domain.ArchitectureCBOW
	params.Window = 7
	params.Sample = 1e-4
	params.Seed = 1234
	model, err := domain.NewModel(uuid.NewString(), time.Unix(1700000000, 123456789), vocab, vectors, params)
	require.NoError(t, err)
	return model
}

func encodeBinary(t *testing.T, model *domain.Model) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Binary{}.Encode(&buf, model))
	return buf.Bytes()
}

// resign recomputes the trailing checksum after a test edits the payload.
func resign(b []byte) []byte {
	n := len(b) - 4
	binary.LittleEndian.PutUint32(b[n:], crc32.ChecksumIEEE(b[:n]))
	return b
}

func TestBinary_RoundTrip(t *testing.T) {
	model := newTestModel(t, []string{"the", "godfather", "loves", "family", "café"}, 6)
	raw := encodeBinary(t, model)

	got, err := Binary{}.Decode(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	assert.Equal(t, model.ID(), got.ID())
	assert.Equal(t, model.CreatedAt().UnixNano(), got.CreatedAt().UnixNano())
	assert.Equal(t, model.Hyperparameters(), got.Hyperparameters())
	assert.Equal(t, model.Vocabulary().Words(), got.Vocabulary().Words())
	for i := 0; i < model.Size(); i++ {
		assert.Equal(t, model.Vocabulary().Count(i), got.Vocabulary().Count(i))
	}
	assert.Equal(t, model.Vectors().Data(), got.Vectors().Data())
}

func TestBinary_Layout(t *testing.T) {
	model := newTestModel(t, []string{"aa", "bbb"}, 3)
	raw := encodeBinary(t, model)

	assert.Equal(t, []byte("WSPC"), raw[:4])
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(raw[4:6]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(raw[8:12]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(raw[12:16]))
	want := headerSize + (2 + 2 + 8) + (2 + 3 + 8) + 2*3*4 + 4
	assert.Len(t, raw, want)
}

func TestBinary_EncodeRejectsNonUUID(t *testing.T) {
	base := newTestModel(t, []string{"aa"}, 2)
	model, err := domain.NewModel("not-a-uuid", time.Now(), base.Vocabulary(), base.Vectors(), base.Hyperparameters())
	require.NoError(t, err)

	err = Binary{}.Encode(&bytes.Buffer{}, model)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBinary_DecodeCorrupt(t *testing.T) {
	model := newTestModel(t, []string{"aa", "ab", "ac"}, 4)
	vocabStart := headerSize

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{"empty", func(b []byte) []byte { return nil }},
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"unsupported version", func(b []byte) []byte {
			binary.LittleEndian.PutUint16(b[4:], 9)
			return resign(b)
		}},
		{"unknown architecture", func(b []byte) []byte { b[6] = 7; return resign(b) }},
		{"zero vocabulary", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 0)
			return resign(b)
		}},
		{"absurd dimensions", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[12:], 1<<30)
			return resign(b)
		}},
		{"declared rows exceed data", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[8:], 4)
			return resign(b)
		}},
		{"truncated header", func(b []byte) []byte { return b[:50] }},
		{"truncated vocabulary", func(b []byte) []byte { return b[:vocabStart+5] }},
		{"truncated matrix", func(b []byte) []byte { return b[:len(b)-10] }},
		{"missing checksum", func(b []byte) []byte { return b[:len(b)-4] }},
		{"trailing bytes", func(b []byte) []byte { return append(b, 0) }},
		{"checksum mismatch", func(b []byte) []byte { b[len(b)-8] ^= 0xff; return b }},
		{"duplicate token", func(b []byte) []byte {
			// "ab" -> "aa"
			b[vocabStart+12+3] = 'a'
			return resign(b)
		}},
		{"invalid token", func(b []byte) []byte {
			b[vocabStart+12+3] = ' '
			return resign(b)
		}},
		{"zero count", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[vocabStart+4:], 0)
			return resign(b)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.mutate(encodeBinary(t, model))

			for _, size := range []int64{int64(len(raw)), -1} {
				got, err := Binary{}.Decode(bytes.NewReader(raw), size)
				assert.Nil(t, got)
				assert.ErrorIs(t, err, domain.ErrCorruptArtifact, "size %d", size)
			}
		})
	}
}
