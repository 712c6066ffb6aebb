package artifact

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/wordspace/internal/core/domain"
	"github.com/custodia-labs/wordspace/internal/core/ports/driven"
	"github.com/custodia-labs/wordspace/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ModelArtifactStore = (*Store)(nil)

// Codec converts between a model and its serialised form.
type Codec interface {
	Encode(w io.Writer, model *domain.Model) error
	Decode(r io.Reader, size int64) (*domain.Model, error)
}

// Store reads and writes model artifacts on the local filesystem.
type Store struct {
	codecs   map[string]Codec
	fallback Codec
}

// NewStore creates a store that writes the binary format by default and the
// text format for .txt and .vec paths.
func NewStore() *Store {
	return &Store{
		codecs: map[string]Codec{
			".txt": Text{},
			".vec": Text{},
		},
		fallback: Binary{},
	}
}

// CodecFor returns the codec used for path.
func (s *Store) CodecFor(path string) Codec {
	if c, ok := s.codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}
	return s.fallback
}

// Write encodes model to a temporary file next to dest, syncs it and
// renames it over dest.
func (s *Store) Write(ctx context.Context, model *domain.Model, dest string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if model == nil {
		return fmt.Errorf("%w: nil model", domain.ErrInvalidInput)
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriterSize(tmp, 1<<20)
	if err = s.CodecFor(dest).Encode(w, model); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(0600); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("rename to %s: %w", dest, err)
	}

	logger.Debug("Wrote model %s (V=%d D=%d) to %s", model.ID(), model.Size(), model.Dimensions(), dest)
	return nil
}

// Read decodes the artifact at src.
func (s *Store) Read(ctx context.Context, src string) (*domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, src)
	}

	model, err := s.CodecFor(src).Decode(f, info.Size())
	if err != nil {
		return nil, err
	}
	logger.Debug("Read model %s (V=%d D=%d) from %s", model.ID(), model.Size(), model.Dimensions(), src)
	return model, nil
}
