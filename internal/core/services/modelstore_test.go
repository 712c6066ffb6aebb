package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordspace/internal/core/domain"
)

func TestModelStore_EmptyStore(t *testing.T) {
	store := NewModelStore(newMockArtifactStore(), nil)

	model, err := store.Current()
	assert.Nil(t, model)
	assert.ErrorIs(t, err, domain.ErrModelNotLoaded)
}

func TestModelStore_LoadSwapsModel(t *testing.T) {
	ctx := context.Background()
	artifacts := newMockArtifactStore()
	metrics := newMockMetrics()
	store := NewModelStore(artifacts, metrics)

	first := buildModel(t, []string{"aa", "bb"}, [][]float32{{1, 0}, {0, 1}})
	second := buildModel(t, []string{"cc", "dd", "ee"}, [][]float32{{1, 0}, {0, 1}, {1, 1}})
	artifacts.models["first.wsp"] = first
	artifacts.models["second.wsp"] = second

	loaded, err := store.Load(ctx, "first.wsp")
	require.NoError(t, err)
	assert.Same(t, first, loaded)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	_, err = store.Load(ctx, "second.wsp")
	require.NoError(t, err)
	current, err = store.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, current.Size())
	assert.Equal(t, 2, metrics.loads)
}

func TestModelStore_FailedLoadKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	artifacts := newMockArtifactStore()
	store := NewModelStore(artifacts, nil)

	model := buildModel(t, []string{"aa", "bb"}, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, store.Install(model))

	_, err := store.Load(ctx, "missing.wsp")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "missing.wsp")

	artifacts.readErr = domain.ErrCorruptArtifact
	_, err = store.Load(ctx, "any.wsp")
	assert.ErrorIs(t, err, domain.ErrCorruptArtifact)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Same(t, model, current)
}

func TestModelStore_Save(t *testing.T) {
	ctx := context.Background()
	artifacts := newMockArtifactStore()
	store := NewModelStore(artifacts, nil)
	model := buildModel(t, []string{"aa"}, [][]float32{{1, 2}})

	require.NoError(t, store.Save(ctx, model, "out.wsp"))
	assert.Same(t, model, artifacts.models["out.wsp"])

	assert.ErrorIs(t, store.Save(ctx, nil, "out.wsp"), domain.ErrInvalidInput)

	artifacts.writeErr = errors.New("disk full")
	err := store.Save(ctx, model, "out.wsp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestModelStore_NotConfigured(t *testing.T) {
	store := NewModelStore(nil, nil)

	_, err := store.Load(context.Background(), "x.wsp")
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), buildModel(t, []string{"aa"}, [][]float32{{1}}), "x.wsp"))
}

func TestModelStore_InstallAndUnload(t *testing.T) {
	store := NewModelStore(nil, nil)
	assert.ErrorIs(t, store.Install(nil), domain.ErrInvalidInput)

	model := buildModel(t, []string{"aa"}, [][]float32{{1}})
	require.NoError(t, store.Install(model))
	_, err := store.Current()
	require.NoError(t, err)

	store.Unload()
	_, err = store.Current()
	assert.ErrorIs(t, err, domain.ErrModelNotLoaded)
}

func TestModelStore_Subscribe(t *testing.T) {
	store := NewModelStore(nil, nil)

	var seen []*domain.Model
	store.Subscribe(func(m *domain.Model) { seen = append(seen, m) })

	model := buildModel(t, []string{"aa"}, [][]float32{{1}})
	require.NoError(t, store.Install(model))
	store.Unload()

	require.Len(t, seen, 2)
	assert.Same(t, model, seen[0])
	assert.Nil(t, seen[1])
}

func TestModelStore_ConcurrentReadersDuringSwap(t *testing.T) {
	store := NewModelStore(nil, nil)
	a := buildModel(t, []string{"aa", "bb"}, [][]float32{{1, 0}, {0, 1}})
	b := buildModel(t, []string{"cc", "dd", "ee"}, [][]float32{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, store.Install(a))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				m, err := store.Current()
				if !assert.NoError(t, err) {
					return
				}
				// A reader sees one whole model, never a mix.
				assert.Equal(t, m.Size(), m.Vectors().Rows())
				assert.Equal(t, m.Size(), m.Vocabulary().Size())
			}
		}()
	}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			require.NoError(t, store.Install(b))
		} else {
			require.NoError(t, store.Install(a))
		}
	}
	wg.Wait()
}
